package dto

import (
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userID"`
	Role      string    `json:"role"`
	HotelID   string    `json:"hotelID"`
}

// CreateStaffUserRequest opens a staff account in the caller's hotel.
type CreateStaffUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required"`
}

// StaffUserResponse is a staff account without its credentials.
type StaffUserResponse struct {
	UserID    string    `json:"userID"`
	HotelID   string    `json:"hotelID"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

func ToStaffUserResponse(u *domain.StaffUser) StaffUserResponse {
	return StaffUserResponse{
		UserID:    u.UserID,
		HotelID:   u.HotelID,
		Username:  u.Username,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		CreatedBy: u.CreatedBy,
	}
}
