package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/SscSPs/hotel_ops_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `
	transaction_id, hotel_id, amount, txn_type, payment_method, purpose, reference, created_by_role, status,
	approved_by, rejected_by, voided_by, rejection_reason, void_reason,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.HotelID,
		&m.Amount,
		&m.TxnType,
		&m.PaymentMethod,
		&m.Purpose,
		&m.Reference,
		&m.CreatedByRole,
		&m.Status,
		&m.ApprovedBy,
		&m.RejectedBy,
		&m.VoidedBy,
		&m.RejectionReason,
		&m.VoidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	return m, err
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, hotelID, txnID string) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + ` FROM transactions WHERE hotel_id = $1 AND transaction_id = $2`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, hotelID, txnID))
	if err != nil {
		return nil, mapError(err, "failed to find transaction "+txnID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions returns a page of transactions ordered by created_at DESC,
// transaction_id DESC. The token points at the last row of the page.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, hotelID string, status *domain.TxnStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT` + transactionColumns + ` FROM transactions WHERE hotel_id = $1`
	args := []any{hotelID}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeCursorToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, err))
		}
		args = append(args, lastCreatedAt, lastID)
		query += ` AND (created_at, transaction_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to query transactions for hotel "+hotelID)
	}
	defer rows.Close()

	page := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, mapError(err, "failed to scan transaction row for hotel "+hotelID)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "error iterating transaction rows for hotel "+hotelID)
	}

	var nextTokenVal *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeCursorToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		page = page[:limit]
	}
	return mapping.ToDomainTransactionSlice(page), nextTokenVal, nil
}

// SumCountedAmount sums posted and approved amounts the user created in [from, to).
func (r *PgxTransactionRepository) SumCountedAmount(ctx context.Context, tx pgx.Tx, hotelID, userID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE hotel_id = $1 AND created_by = $2
		  AND status IN ('posted', 'approved')
		  AND created_at >= $3 AND created_at < $4`
	var total decimal.Decimal
	if err := r.db(tx).QueryRow(ctx, query, hotelID, userID, from, to).Scan(&total); err != nil {
		return decimal.Zero, mapError(err, "failed to sum daily transactions for user "+userID)
	}
	return total, nil
}

// LockDailyTotal takes a transaction-scoped advisory lock on (hotel, user, day).
func (r *PgxTransactionRepository) LockDailyTotal(ctx context.Context, tx pgx.Tx, hotelID, userID string, day time.Time) error {
	key := hotelID + "|" + userID + "|" + day.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return mapError(err, "failed to lock daily total for user "+userID)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, hotel_id, amount, txn_type, payment_method, purpose, reference,
			created_by_role, status, approved_by, rejected_by, voided_by, rejection_reason, void_reason,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.db(tx).Exec(ctx, query,
		m.TransactionID,
		m.HotelID,
		m.Amount,
		m.TxnType,
		m.PaymentMethod,
		m.Purpose,
		m.Reference,
		m.CreatedByRole,
		m.Status,
		m.ApprovedBy,
		m.RejectedBy,
		m.VoidedBy,
		m.RejectionReason,
		m.VoidReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	return mapError(err, "failed to insert transaction "+m.TransactionID)
}

// TransitionTransaction applies change only if the row is in one of change.From.
func (r *PgxTransactionRepository) TransitionTransaction(ctx context.Context, change domain.TxnStatusChange) (*domain.Transaction, error) {
	from := make([]string, len(change.From))
	for i, s := range change.From {
		from[i] = string(s)
	}

	var actorColumn, reasonColumn string
	switch change.To {
	case domain.TxnApproved:
		actorColumn = "approved_by"
	case domain.TxnRejected:
		actorColumn, reasonColumn = "rejected_by", "rejection_reason"
	case domain.TxnVoided:
		actorColumn, reasonColumn = "voided_by", "void_reason"
	default:
		return nil, apperrors.NewAppError(500, "unsupported transaction status change to "+string(change.To), nil)
	}

	set := `status = $4, ` + actorColumn + ` = $5, last_updated_at = $6, last_updated_by = $5, version = version + 1`
	args := []any{change.HotelID, change.TransactionID, from, string(change.To), change.ActorID, change.At}
	if reasonColumn != "" {
		args = append(args, change.Reason)
		set += `, ` + reasonColumn + ` = $7`
	}

	query := `UPDATE transactions SET ` + set + `
		WHERE hotel_id = $1 AND transaction_id = $2 AND status = ANY($3)
		RETURNING` + transactionColumns

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "failed to update status of transaction "+change.TransactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}
