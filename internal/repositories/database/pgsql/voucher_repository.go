package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const voucherColumns = `
	voucher_id, hotel_id, code, discount_type, discount_amount, max_uses, used_count, valid_until, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryWithTx {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryWithTx = (*PgxVoucherRepository)(nil)

func scanVoucher(row pgx.Row) (domain.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.HotelID,
		&m.Code,
		&m.DiscountType,
		&m.DiscountAmount,
		&m.MaxUses,
		&m.UsedCount,
		&m.ValidUntil,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.Voucher{}, err
	}
	return mapping.ToDomainVoucher(m), nil
}

// FindVoucherByCode looks a voucher up by its normalized code.
func (r *PgxVoucherRepository) FindVoucherByCode(ctx context.Context, hotelID, code string) (*domain.Voucher, error) {
	query := `SELECT` + voucherColumns + ` FROM vouchers WHERE hotel_id = $1 AND code = $2`
	v, err := scanVoucher(r.Pool.QueryRow(ctx, query, hotelID, code))
	if err != nil {
		return nil, mapError(err, "failed to find voucher by code")
	}
	return &v, nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, hotelID, voucherID string) (*domain.Voucher, error) {
	query := `SELECT` + voucherColumns + ` FROM vouchers WHERE hotel_id = $1 AND voucher_id = $2`
	v, err := scanVoucher(r.Pool.QueryRow(ctx, query, hotelID, voucherID))
	if err != nil {
		return nil, mapError(err, "failed to find voucher "+voucherID)
	}
	return &v, nil
}

// ListVouchers lists a hotel's vouchers, newest first.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, hotelID string) ([]domain.Voucher, error) {
	query := `SELECT` + voucherColumns + ` FROM vouchers WHERE hotel_id = $1 ORDER BY created_at DESC, voucher_id`
	rows, err := r.Pool.Query(ctx, query, hotelID)
	if err != nil {
		return nil, mapError(err, "failed to query vouchers for hotel "+hotelID)
	}
	defer rows.Close()

	vouchers := []domain.Voucher{}
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan voucher for hotel "+hotelID)
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating vouchers for hotel "+hotelID)
	}
	return vouchers, nil
}

// SaveVoucher inserts a new voucher. A duplicate code yields ErrDuplicate.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (voucher_id, hotel_id, code, discount_type, discount_amount, max_uses, used_count,
			valid_until, is_active, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.Pool.Exec(ctx, query,
		m.VoucherID,
		m.HotelID,
		m.Code,
		m.DiscountType,
		m.DiscountAmount,
		m.MaxUses,
		m.UsedCount,
		m.ValidUntil,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	return mapError(err, "failed to insert voucher "+m.Code)
}

// InsertRedemption records the redemption unless (voucher, reference) exists.
func (r *PgxVoucherRepository) InsertRedemption(ctx context.Context, tx pgx.Tx, redemption domain.VoucherRedemption) (bool, error) {
	query := `
		INSERT INTO voucher_redemptions (voucher_id, reference, redeemed_by, redeemed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (voucher_id, reference) DO NOTHING`
	tag, err := r.db(tx).Exec(ctx, query, redemption.VoucherID, redemption.Reference, redemption.RedeemedBy, redemption.RedeemedAt)
	if err != nil {
		return false, mapError(err, "failed to record redemption of voucher "+redemption.VoucherID)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementUsage bumps used_count if the voucher is still redeemable at now.
// The row lock taken by the UPDATE serializes concurrent redemptions.
func (r *PgxVoucherRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, hotelID, voucherID string, now time.Time) (bool, error) {
	query := `
		UPDATE vouchers
		SET used_count = used_count + 1,
		    last_updated_at = $3,
		    version = version + 1
		WHERE hotel_id = $1 AND voucher_id = $2
		  AND is_active
		  AND valid_until >= $3
		  AND used_count < max_uses`
	tag, err := r.db(tx).Exec(ctx, query, hotelID, voucherID, now)
	if err != nil {
		return false, mapError(err, "failed to increment usage of voucher "+voucherID)
	}
	return tag.RowsAffected() == 1, nil
}
