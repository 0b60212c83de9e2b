package pgsql

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/SscSPs/hotel_ops_app/internal/models"
	"github.com/SscSPs/hotel_ops_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStaffUserRepository struct {
	BaseRepository
}

func newPgxStaffUserRepository(pool *pgxpool.Pool) portsrepo.StaffUserRepositoryFacade {
	return &PgxStaffUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StaffUserRepositoryFacade = (*PgxStaffUserRepository)(nil)

// FindStaffUserByUsername retrieves an account by username, case-insensitively.
func (r *PgxStaffUserRepository) FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	query := `
		SELECT user_id, hotel_id, username, password_hash, role, is_active,
		       created_at, created_by, last_updated_at, last_updated_by, version
		FROM staff_users
		WHERE lower(username) = lower($1)`
	var m models.StaffUser
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&m.UserID,
		&m.HotelID,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, mapError(err, "failed to find staff user "+username)
	}
	user := mapping.ToDomainStaffUser(m)
	return &user, nil
}

func (r *PgxStaffUserRepository) SaveStaffUser(ctx context.Context, user domain.StaffUser) error {
	m := mapping.ToModelStaffUser(user)
	query := `
		INSERT INTO staff_users (user_id, hotel_id, username, password_hash, role, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.HotelID,
		m.Username,
		m.PasswordHash,
		m.Role,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)
	return mapError(err, "failed to insert staff user "+m.Username)
}
