package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// OrderReader defines read operations for orders and their KOT items.
type OrderReader interface {
	// FindOrderByID retrieves an order with its items ordered by creation.
	FindOrderByID(ctx context.Context, hotelID, orderID string) (*domain.Order, error)

	// FindOrderItemByID retrieves a single KOT item.
	FindOrderItemByID(ctx context.Context, hotelID, itemID string) (*domain.OrderItem, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	// SaveOrder inserts a new order row.
	SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error

	// SaveOrderItems inserts new KOT items.
	SaveOrderItems(ctx context.Context, tx pgx.Tx, items []domain.OrderItem) error

	// CompareAndSetItemStatus moves an item from expected to next only if it is
	// still in expected. It returns nil and no error when the item was not in
	// the expected state.
	CompareAndSetItemStatus(ctx context.Context, hotelID, itemID string, expected, next domain.OrderItemStatus, declineReason *string, userID string, at time.Time) (*domain.OrderItem, error)
}

// OrderBillingSupport defines the locking operations used while finalizing a bill.
type OrderBillingSupport interface {
	// LockOrder selects the order row FOR UPDATE.
	LockOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID string) (*domain.Order, error)

	// FindOrderItemsForUpdate selects every item of the order FOR UPDATE.
	FindOrderItemsForUpdate(ctx context.Context, tx pgx.Tx, hotelID, orderID string) ([]domain.OrderItem, error)

	// MarkItemsBilled stamps billID on the items and, when complete is true,
	// moves approved and ready items straight to completed. This is the one
	// path that bypasses the item state machine: settling a table check
	// serves whatever is still in the kitchen.
	MarkItemsBilled(ctx context.Context, tx pgx.Tx, hotelID, billID string, itemIDs []string, complete bool, userID string, at time.Time) error

	// CloseOrder marks the order closed.
	CloseOrder(ctx context.Context, tx pgx.Tx, hotelID, orderID, userID string, at time.Time) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
	OrderBillingSupport
}

// OrderRepositoryWithTx extends OrderRepositoryFacade with transaction capabilities
type OrderRepositoryWithTx interface {
	OrderRepositoryFacade
	TransactionManager
}
