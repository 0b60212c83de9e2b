package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/SscSPs/hotel_ops_app/internal/utils"
)

// TokenSettings configures issued access tokens.
type TokenSettings struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// authService verifies staff credentials and issues JWTs.
type authService struct {
	BaseService
	userRepo portsrepo.StaffUserRepositoryFacade
	tokens   TokenSettings
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.StaffUserRepositoryFacade, tokens TokenSettings, options ...ServiceOption) portssvc.AuthSvcFacade {
	svc := &authService{userRepo: userRepo, tokens: tokens}
	svc.apply(options)
	return svc
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login checks the username and bcrypt hash. Unknown users, inactive users
// and wrong passwords all yield ErrUnauthorized.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	user, err := s.userRepo.FindStaffUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.BurnPasswordCheck(req.Password)
			s.LogWarn(ctx, err, "Login for unknown user", slog.String("username", username))
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Login rejected", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	actor := user.Actor()
	token, expiresAt, err := utils.GenerateJWT(actor, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign access token", err)
	}
	s.LogInfo(ctx, "Staff logged in", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    actor.UserID,
		Role:      string(actor.Role),
		HotelID:   actor.HotelID,
	}, nil
}

// CreateStaffUser opens an account in hotelID with a bcrypt-hashed password.
func (s *authService) CreateStaffUser(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateStaffUserRequest) (*domain.StaffUser, error) {
	if !actor.Can(domain.CapConfigureHotel) {
		return nil, apperrors.ErrForbidden
	}
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	user, err := s.newStaffUser(hotelID, req.Username, req.Password, role, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveStaffUser(ctx, *user); err != nil {
		s.LogFailure(ctx, err, "Failed to save staff user", slog.String("username", user.Username))
		return nil, err
	}
	s.LogInfo(ctx, "Staff user created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return user, nil
}

// BootstrapOwner creates an owner account for a fresh installation.
func (s *authService) BootstrapOwner(ctx context.Context, hotelID, username, password string) error {
	existing, err := s.userRepo.FindStaffUserByUsername(ctx, strings.TrimSpace(username))
	if err == nil && existing != nil {
		s.LogDebug(ctx, "Owner account already present", slog.String("username", existing.Username))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	user, err := s.newStaffUser(hotelID, username, password, domain.RoleOwner, "system")
	if err != nil {
		return err
	}
	if err := s.userRepo.SaveStaffUser(ctx, *user); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	s.LogInfo(ctx, "Owner account bootstrapped", slog.String("user_id", user.UserID), slog.String("hotel_id", hotelID))
	return nil
}

func (s *authService) newStaffUser(hotelID, username, password string, role domain.Role, createdBy string) (*domain.StaffUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(hotelID) == "" {
		return nil, fmt.Errorf("%w: hotel and username are required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}
	return &domain.StaffUser{
		UserID:       uuid.NewString(),
		HotelID:      hotelID,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(createdBy, s.Now()),
	}, nil
}
