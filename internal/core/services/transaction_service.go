package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// transactionService is the hotel money ledger. Every write checks the
// actor's role limits.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryWithTx
	roleLimits portssvc.RoleLimitSvcFacade
	location   *time.Location
}

// NewTransactionService creates a new TransactionService. Daily limits are
// counted over calendar days in loc.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryWithTx, roleLimits portssvc.RoleLimitSvcFacade, loc *time.Location, options ...ServiceOption) portssvc.TransactionSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	svc := &transactionService{txnRepo: txnRepo, roleLimits: roleLimits, location: loc}
	svc.apply(options)
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func validateNewTransaction(in domain.NewTransaction) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return fmt.Errorf("%w: amount must have at most 2 decimal places", apperrors.ErrValidation)
	}
	if !in.TxnType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, in.TxnType)
	}
	if !in.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, in.PaymentMethod)
	}
	return nil
}

// RecordTransaction records in its own database transaction and announces it.
func (s *transactionService) RecordTransaction(ctx context.Context, actor domain.Actor, hotelID string, in domain.NewTransaction) (*domain.Transaction, error) {
	var created *domain.Transaction
	err := s.RetryOnConflict(ctx, "record transaction", func() error {
		tx, err := s.txnRepo.Begin(ctx)
		if err != nil {
			return err
		}
		defer s.txnRepo.Rollback(ctx, tx)

		txn, err := s.RecordInTx(ctx, tx, actor, hotelID, in)
		if err != nil {
			return err
		}
		if err := s.txnRepo.Commit(ctx, tx); err != nil {
			return err
		}
		created = txn
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to record transaction",
			slog.String("amount", in.Amount.String()), slog.String("txn_type", string(in.TxnType)))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", created.TransactionID), slog.String("status", string(created.Status)))
	s.Publish(ctx, transactionEvent(domain.EventTransactionCreated, actor, created))
	return created, nil
}

// RecordInTx applies the role-limit checks in order: per-transaction
// ceiling, daily ceiling under an advisory lock, then the approval threshold.
func (s *transactionService) RecordInTx(ctx context.Context, tx pgx.Tx, actor domain.Actor, hotelID string, in domain.NewTransaction) (*domain.Transaction, error) {
	if err := validateNewTransaction(in); err != nil {
		return nil, err
	}
	if !actor.Can(domain.CapRecordTransactions) {
		return nil, apperrors.ErrForbidden
	}

	limit, err := s.roleLimits.GetRoleLimit(ctx, hotelID, actor.Role)
	if err != nil {
		return nil, err
	}
	if limit.ExceedsTransactionLimit(in.Amount) {
		return nil, &apperrors.LimitError{
			Kind:   apperrors.LimitPerTransaction,
			Limit:  *limit.MaxTransactionAmount,
			Amount: in.Amount,
		}
	}

	now := s.Now()
	if limit.MaxDailyAmount != nil {
		dayStart, dayEnd := domain.SiteDay(now, s.location)
		if err := s.txnRepo.LockDailyTotal(ctx, tx, hotelID, actor.UserID, dayStart); err != nil {
			return nil, err
		}
		today, err := s.txnRepo.SumCountedAmount(ctx, tx, hotelID, actor.UserID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if limit.ExceedsDailyLimit(today, in.Amount) {
			return nil, &apperrors.LimitError{
				Kind:    apperrors.LimitDaily,
				Limit:   *limit.MaxDailyAmount,
				Current: today,
				Amount:  in.Amount,
			}
		}
	}

	status := domain.TxnPosted
	if limit.NeedsApproval(in.Amount) {
		status = domain.TxnPendingApproval
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		HotelID:       hotelID,
		Amount:        in.Amount,
		TxnType:       in.TxnType,
		PaymentMethod: in.PaymentMethod,
		Purpose:       strings.TrimSpace(in.Purpose),
		Reference:     strings.TrimSpace(in.Reference),
		CreatedByRole: actor.Role,
		Status:        status,
		AuditFields:   domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.txnRepo.SaveTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ApproveTransaction moves a pending transaction to approved. Approving an
// already approved transaction returns it unchanged.
func (s *transactionService) ApproveTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID string) (*domain.Transaction, error) {
	if !actor.Can(domain.CapApproveTransactions) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Actor cannot approve transactions", slog.String("transaction_id", txnID))
		return nil, apperrors.ErrForbidden
	}
	return s.transition(ctx, actor, domain.TxnStatusChange{
		HotelID:       hotelID,
		TransactionID: txnID,
		From:          []domain.TxnStatus{domain.TxnPendingApproval},
		To:            domain.TxnApproved,
		ActorID:       actor.UserID,
	}, true)
}

// RejectTransaction moves a pending transaction to rejected.
func (s *transactionService) RejectTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID, reason string) (*domain.Transaction, error) {
	if !actor.Can(domain.CapApproveTransactions) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Actor cannot reject transactions", slog.String("transaction_id", txnID))
		return nil, apperrors.ErrForbidden
	}
	normalized, err := domain.NormalizeReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, domain.TxnStatusChange{
		HotelID:       hotelID,
		TransactionID: txnID,
		From:          []domain.TxnStatus{domain.TxnPendingApproval},
		To:            domain.TxnRejected,
		ActorID:       actor.UserID,
		Reason:        &normalized,
	}, false)
}

// VoidTransaction voids a posted or approved transaction. It requires the
// owner-granted void flag on the actor's role, whatever the role is.
func (s *transactionService) VoidTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID, reason string) (*domain.Transaction, error) {
	limit, err := s.roleLimits.GetRoleLimit(ctx, hotelID, actor.Role)
	if err != nil {
		return nil, err
	}
	if !limit.CanVoidTransactions {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Role is not allowed to void transactions", slog.String("transaction_id", txnID))
		return nil, apperrors.ErrForbidden
	}
	normalized, err := domain.NormalizeReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, actor, domain.TxnStatusChange{
		HotelID:       hotelID,
		TransactionID: txnID,
		From:          []domain.TxnStatus{domain.TxnPosted, domain.TxnApproved},
		To:            domain.TxnVoided,
		ActorID:       actor.UserID,
		Reason:        &normalized,
	}, false)
}

func (s *transactionService) transition(ctx context.Context, actor domain.Actor, change domain.TxnStatusChange, idempotent bool) (*domain.Transaction, error) {
	change.At = s.Now()
	updated, err := s.txnRepo.TransitionTransaction(ctx, change)
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", change.TransactionID))
		return nil, err
	}
	if updated == nil {
		current, err := s.txnRepo.FindTransactionByID(ctx, change.HotelID, change.TransactionID)
		if err != nil {
			s.LogFailure(ctx, err, "Transaction lookup failed", slog.String("transaction_id", change.TransactionID))
			return nil, err
		}
		if idempotent && current.Status == change.To {
			return current, nil
		}
		err = apperrors.NewTransitionError("transaction", string(current.Status), string(change.To))
		s.LogWarn(ctx, err, "Transaction transition rejected", slog.String("transaction_id", change.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", updated.TransactionID), slog.String("status", string(updated.Status)))
	s.Publish(ctx, transactionEvent(domain.EventTransactionUpdated, actor, updated))
	return updated, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, hotelID, txnID)
	if err != nil {
		s.LogFailure(ctx, err, "Transaction lookup failed", slog.String("transaction_id", txnID))
		return nil, err
	}
	if !actor.Can(domain.CapViewLedger) && txn.CreatedBy != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return txn, nil
}

// ListTransactions retrieves a page of the hotel's ledger.
func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, hotelID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if !actor.Can(domain.CapViewLedger) {
		return nil, apperrors.ErrForbidden
	}
	var status *domain.TxnStatus
	if params.Status != "" {
		st := domain.TxnStatus(params.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		status = &st
	}
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, hotelID, status, limit, params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list transactions")
		return nil, err
	}
	s.LogDebug(ctx, "Listed transactions", slog.Int("count", len(txns)))
	response := dto.ToListTransactionsResponse(txns, nextToken)
	return &response, nil
}

// DailyTotal sums the actor's posted and approved amounts for the site-local day.
func (s *transactionService) DailyTotal(ctx context.Context, actor domain.Actor, hotelID string, day time.Time) (decimal.Decimal, error) {
	dayStart, dayEnd := domain.SiteDay(day, s.location)
	return s.txnRepo.SumCountedAmount(ctx, nil, hotelID, actor.UserID, dayStart, dayEnd)
}

func transactionEvent(name domain.EventName, actor domain.Actor, txn *domain.Transaction) domain.Event {
	return domain.Event{
		Name:     name,
		HotelID:  txn.HotelID,
		EntityID: txn.TransactionID,
		ActorID:  actor.UserID,
		Payload:  dto.ToTransactionResponse(txn),
	}
}
