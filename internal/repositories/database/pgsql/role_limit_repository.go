package pgsql

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roleLimitColumns = `
	hotel_id, role, max_transaction_amount, max_daily_amount, requires_approval_above,
	can_void_transactions, can_approve_wastage, created_at, created_by, last_updated_at, last_updated_by, version`

type PgxRoleLimitRepository struct {
	BaseRepository
}

func newPgxRoleLimitRepository(pool *pgxpool.Pool) portsrepo.RoleLimitRepository {
	return &PgxRoleLimitRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RoleLimitRepository = (*PgxRoleLimitRepository)(nil)

func scanRoleLimit(row pgx.Row) (domain.RoleLimit, error) {
	var m models.RoleLimit
	err := row.Scan(
		&m.HotelID,
		&m.Role,
		&m.MaxTransactionAmount,
		&m.MaxDailyAmount,
		&m.RequiresApprovalAbove,
		&m.CanVoidTransactions,
		&m.CanApproveWastage,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return domain.RoleLimit{}, err
	}
	return mapping.ToDomainRoleLimit(m), nil
}

// FindRoleLimit returns ErrNotFound when the role has no row.
func (r *PgxRoleLimitRepository) FindRoleLimit(ctx context.Context, hotelID string, role domain.Role) (*domain.RoleLimit, error) {
	query := `SELECT` + roleLimitColumns + ` FROM role_limits WHERE hotel_id = $1 AND role = $2`
	limit, err := scanRoleLimit(r.Pool.QueryRow(ctx, query, hotelID, string(role)))
	if err != nil {
		return nil, mapError(err, "failed to find role limit for "+string(role))
	}
	return &limit, nil
}

func (r *PgxRoleLimitRepository) ListRoleLimits(ctx context.Context, hotelID string) ([]domain.RoleLimit, error) {
	query := `SELECT` + roleLimitColumns + ` FROM role_limits WHERE hotel_id = $1 ORDER BY role`
	rows, err := r.Pool.Query(ctx, query, hotelID)
	if err != nil {
		return nil, mapError(err, "failed to query role limits for hotel "+hotelID)
	}
	defer rows.Close()

	limits := []domain.RoleLimit{}
	for rows.Next() {
		l, err := scanRoleLimit(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan role limit for hotel "+hotelID)
		}
		limits = append(limits, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating role limits for hotel "+hotelID)
	}
	return limits, nil
}

// UpsertRoleLimit replaces the (hotel, role) row.
func (r *PgxRoleLimitRepository) UpsertRoleLimit(ctx context.Context, limit domain.RoleLimit) error {
	m := mapping.ToModelRoleLimit(limit)
	query := `
		INSERT INTO role_limits (hotel_id, role, max_transaction_amount, max_daily_amount, requires_approval_above,
			can_void_transactions, can_approve_wastage, created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		ON CONFLICT (hotel_id, role) DO UPDATE
		SET max_transaction_amount = EXCLUDED.max_transaction_amount,
		    max_daily_amount = EXCLUDED.max_daily_amount,
		    requires_approval_above = EXCLUDED.requires_approval_above,
		    can_void_transactions = EXCLUDED.can_void_transactions,
		    can_approve_wastage = EXCLUDED.can_approve_wastage,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by,
		    version = role_limits.version + 1`
	_, err := r.Pool.Exec(ctx, query,
		m.HotelID,
		m.Role,
		m.MaxTransactionAmount,
		m.MaxDailyAmount,
		m.RequiresApprovalAbove,
		m.CanVoidTransactions,
		m.CanApproveWastage,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "failed to upsert role limit for "+m.Role)
}
