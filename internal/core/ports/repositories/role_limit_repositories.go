package repositories

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// RoleLimitRepository persists per-role financial ceilings.
type RoleLimitRepository interface {
	// FindRoleLimit returns ErrNotFound when the role has no row.
	FindRoleLimit(ctx context.Context, hotelID string, role domain.Role) (*domain.RoleLimit, error)

	ListRoleLimits(ctx context.Context, hotelID string) ([]domain.RoleLimit, error)

	// UpsertRoleLimit replaces the (hotel, role) row.
	UpsertRoleLimit(ctx context.Context, limit domain.RoleLimit) error
}
