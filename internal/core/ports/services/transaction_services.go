package services

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for the ledger
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions, newest first.
	ListTransactions(ctx context.Context, actor domain.Actor, hotelID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// DailyTotal sums the actor's counted amounts for the site-local day containing day.
	DailyTotal(ctx context.Context, actor domain.Actor, hotelID string, day time.Time) (decimal.Decimal, error)
}

// TransactionWriterSvc defines ledger mutations
type TransactionWriterSvc interface {
	// RecordTransaction checks role limits and stores the transaction as
	// posted or pending_approval.
	RecordTransaction(ctx context.Context, actor domain.Actor, hotelID string, txn domain.NewTransaction) (*domain.Transaction, error)

	// RecordInTx records inside the caller's transaction and publishes nothing.
	RecordInTx(ctx context.Context, tx pgx.Tx, actor domain.Actor, hotelID string, txn domain.NewTransaction) (*domain.Transaction, error)

	ApproveTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID string) (*domain.Transaction, error)
	RejectTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID, reason string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, actor domain.Actor, hotelID, txnID, reason string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all ledger service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
