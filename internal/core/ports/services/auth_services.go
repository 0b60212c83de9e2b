package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// AuthSvcFacade issues access tokens and manages staff accounts.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// CreateStaffUser opens an account in hotelID. Requires configure_hotel.
	CreateStaffUser(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateStaffUserRequest) (*domain.StaffUser, error)

	// BootstrapOwner creates the first owner account unless the username is taken.
	BootstrapOwner(ctx context.Context, hotelID, username, password string) error
}
