package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events portssvc.EventPublisher
	Clock  func() time.Time
}

// ServiceOption is a functional option for configuring the shared service fields
type ServiceOption func(*BaseService)

// WithEventPublisher sets where post-commit events are sent
func WithEventPublisher(publisher portssvc.EventPublisher) ServiceOption {
	return func(s *BaseService) {
		s.Events = publisher
	}
}

// WithClock overrides the time source
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func (s *BaseService) apply(options []ServiceOption) {
	for _, option := range options {
		option(s)
	}
}

// Now returns the current time in UTC from the configured clock
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected request, including the reason
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs caller mistakes at warn and everything else at error
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isCallerError(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isCallerError(err error) bool {
	for _, target := range []error{
		apperrors.ErrValidation, apperrors.ErrForbidden, apperrors.ErrNotFound,
		apperrors.ErrInvalidTransition, apperrors.ErrLimitExceeded, apperrors.ErrDailyLimitExceeded,
		apperrors.ErrVoucherExpired, apperrors.ErrVoucherExhausted, apperrors.ErrVoucherInactive,
		apperrors.ErrConflict, apperrors.ErrDuplicate, apperrors.ErrConcurrencyConflict,
		apperrors.ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Publish sends events after commit. Failures are logged and never returned.
func (s *BaseService) Publish(ctx context.Context, events ...domain.Event) {
	if s.Events == nil {
		return
	}
	for _, event := range events {
		if event.OccurredAt.IsZero() {
			event.OccurredAt = s.Now()
		}
		if err := s.Events.Publish(ctx, event); err != nil {
			s.LogError(ctx, err, "Failed to publish event",
				slog.String("event", string(event.Name)),
				slog.String("entity_id", event.EntityID))
		}
	}
}

// RetryOnConflict runs op and runs it once more if it lost a race.
func (s *BaseService) RetryOnConflict(ctx context.Context, name string, op func() error) error {
	err := op()
	if errors.Is(err, apperrors.ErrConcurrencyConflict) {
		s.LogDebug(ctx, "Retrying after concurrent modification", slog.String("operation", name))
		err = op()
	}
	return err
}
