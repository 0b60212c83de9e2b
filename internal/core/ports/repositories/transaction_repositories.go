package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, hotelID, txnID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, newest first, using
	// token-based pagination. It returns the page and a token for the next one.
	ListTransactions(ctx context.Context, hotelID string, status *domain.TxnStatus, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumCountedAmount sums the actor's posted and approved amounts created in
	// [from, to). tx may be nil to read outside a transaction.
	SumCountedAmount(ctx context.Context, tx pgx.Tx, hotelID, userID string, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// LockDailyTotal serializes writers for (hotel, user, day) until tx ends.
	LockDailyTotal(ctx context.Context, tx pgx.Tx, hotelID, userID string, day time.Time) error

	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// TransitionTransaction applies change only if the row is in one of
	// change.From. It returns nil and no error when no row matched.
	TransitionTransaction(ctx context.Context, change domain.TxnStatusChange) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
