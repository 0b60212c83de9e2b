package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller's role lacks the capability for the action.
// Handlers never expose more than "not permitted" for it.
var ErrForbidden = errors.New("not permitted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflict")

// ErrInternal is returned when an unexpected infrastructure failure occurred.
var ErrInternal = errors.New("internal error")

var (
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrLimitExceeded       = errors.New("transaction limit exceeded")
	ErrDailyLimitExceeded  = errors.New("daily transaction limit exceeded")
	ErrConcurrencyConflict = errors.New("concurrent modification, retry")

	ErrVoucherExpired   = errors.New("voucher expired")
	ErrVoucherExhausted = errors.New("voucher usage limit reached")
	ErrVoucherInactive  = errors.New("voucher inactive")
)

// TransitionError reports a state machine precondition violation with the
// state the entity was actually in.
type TransitionError struct {
	Entity    string
	Current   string
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move %s from %s to %s", ErrInvalidTransition, e.Entity, e.Current, e.Requested)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError builds a TransitionError.
func NewTransitionError(entity, current, requested string) *TransitionError {
	return &TransitionError{Entity: entity, Current: current, Requested: requested}
}

// LimitKind tells per-transaction and daily ceilings apart.
type LimitKind string

const (
	LimitPerTransaction LimitKind = "per_transaction"
	LimitDaily          LimitKind = "daily"
)

// LimitError carries the ceiling that was hit so the UI can explain it.
type LimitError struct {
	Kind    LimitKind
	Limit   decimal.Decimal
	Current decimal.Decimal // already-counted daily total, zero for per-transaction
	Amount  decimal.Decimal
}

func (e *LimitError) Error() string {
	if e.Kind == LimitDaily {
		return fmt.Sprintf("%s: %s already counted today, %s requested, limit %s",
			ErrDailyLimitExceeded, e.Current.StringFixed(2), e.Amount.StringFixed(2), e.Limit.StringFixed(2))
	}
	return fmt.Sprintf("%s: amount %s exceeds limit %s", ErrLimitExceeded, e.Amount.StringFixed(2), e.Limit.StringFixed(2))
}

func (e *LimitError) Unwrap() error {
	if e.Kind == LimitDaily {
		return ErrDailyLimitExceeded
	}
	return ErrLimitExceeded
}

// AppError wraps infrastructure failures with the HTTP status they map to.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError. A nil cause is allowed.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
