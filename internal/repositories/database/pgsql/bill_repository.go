package pgsql

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

// FindBillByID retrieves a bill. tx may be nil.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, tx pgx.Tx, hotelID, billID string) (*domain.Bill, error) {
	query := `
		SELECT bill_id, hotel_id, order_id, policy, voucher_id, transaction_id, payment_method, item_ids,
		       subtotal, tax_breakdown, total_tax, discount_amount, grand_total, created_at, created_by
		FROM bills
		WHERE hotel_id = $1 AND bill_id = $2`
	var m models.Bill
	err := r.db(tx).QueryRow(ctx, query, hotelID, billID).Scan(
		&m.BillID,
		&m.HotelID,
		&m.OrderID,
		&m.Policy,
		&m.VoucherID,
		&m.TransactionID,
		&m.PaymentMethod,
		&m.ItemIDs,
		&m.Subtotal,
		&m.TaxBreakdown,
		&m.TotalTax,
		&m.DiscountAmount,
		&m.GrandTotal,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, mapError(err, "failed to find bill "+billID)
	}
	bill, err := mapping.ToDomainBill(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode bill "+billID, err)
	}
	return &bill, nil
}

// SaveBill inserts a bill. A duplicate id yields ErrDuplicate.
func (r *PgxBillRepository) SaveBill(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	m, err := mapping.ToModelBill(bill)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode bill "+bill.BillID, err)
	}
	query := `
		INSERT INTO bills (bill_id, hotel_id, order_id, policy, voucher_id, transaction_id, payment_method, item_ids,
			subtotal, tax_breakdown, total_tax, discount_amount, grand_total, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.db(tx).Exec(ctx, query,
		m.BillID,
		m.HotelID,
		m.OrderID,
		m.Policy,
		m.VoucherID,
		m.TransactionID,
		m.PaymentMethod,
		m.ItemIDs,
		m.Subtotal,
		string(m.TaxBreakdown),
		m.TotalTax,
		m.DiscountAmount,
		m.GrandTotal,
		m.CreatedAt,
		m.CreatedBy,
	)
	return mapError(err, "failed to insert bill "+m.BillID)
}
