package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VoucherReader defines read operations for vouchers.
type VoucherReader interface {
	// FindVoucherByCode looks a voucher up by its normalized code.
	FindVoucherByCode(ctx context.Context, hotelID, code string) (*domain.Voucher, error)

	// FindVoucherByID retrieves a voucher by id.
	FindVoucherByID(ctx context.Context, hotelID, voucherID string) (*domain.Voucher, error)

	// ListVouchers lists a hotel's vouchers, newest first.
	ListVouchers(ctx context.Context, hotelID string) ([]domain.Voucher, error)
}

// VoucherWriter defines write operations for vouchers.
type VoucherWriter interface {
	// SaveVoucher inserts a new voucher. A duplicate code yields ErrDuplicate.
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error
}

// VoucherRedemptionSupport defines the operations that make up a redemption.
type VoucherRedemptionSupport interface {
	// InsertRedemption records the redemption unless (voucher, reference)
	// already exists. It reports whether a new row was written.
	InsertRedemption(ctx context.Context, tx pgx.Tx, redemption domain.VoucherRedemption) (bool, error)

	// IncrementUsage bumps used_count if the voucher is active, unexpired at
	// now and below max_uses. It reports whether a row was updated.
	IncrementUsage(ctx context.Context, tx pgx.Tx, hotelID, voucherID string, now time.Time) (bool, error)
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
	VoucherRedemptionSupport
}

// VoucherRepositoryWithTx extends VoucherRepositoryFacade with transaction capabilities
type VoucherRepositoryWithTx interface {
	VoucherRepositoryFacade
	TransactionManager
}
