package repositories

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// StaffUserReader defines read operations for staff accounts.
type StaffUserReader interface {
	// FindStaffUserByUsername retrieves an account by its unique username.
	FindStaffUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
}

// StaffUserWriter defines write operations for staff accounts.
type StaffUserWriter interface {
	SaveStaffUser(ctx context.Context, user domain.StaffUser) error
}

// StaffUserRepositoryFacade combines staff account repository interfaces
type StaffUserRepositoryFacade interface {
	StaffUserReader
	StaffUserWriter
}
