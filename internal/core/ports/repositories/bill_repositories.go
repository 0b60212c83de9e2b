package repositories

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BillRepository persists finalized bills.
type BillRepository interface {
	// FindBillByID retrieves a bill. tx may be nil.
	FindBillByID(ctx context.Context, tx pgx.Tx, hotelID, billID string) (*domain.Bill, error)

	// SaveBill inserts a bill. A duplicate id yields ErrDuplicate.
	SaveBill(ctx context.Context, tx pgx.Tx, bill domain.Bill) error
}
