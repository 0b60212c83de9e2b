package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

type roleLimitService struct {
	BaseService
	repo portsrepo.RoleLimitRepository
}

// NewRoleLimitService creates a new RoleLimitService.
func NewRoleLimitService(repo portsrepo.RoleLimitRepository, options ...ServiceOption) portssvc.RoleLimitSvcFacade {
	svc := &roleLimitService{repo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.RoleLimitSvcFacade = (*roleLimitService)(nil)

// GetRoleLimit returns the configured limits or, when the role has no row,
// no limits and no flags.
func (s *roleLimitService) GetRoleLimit(ctx context.Context, hotelID string, role domain.Role) (domain.RoleLimit, error) {
	limit, err := s.repo.FindRoleLimit(ctx, hotelID, role)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.NoLimits(hotelID, role), nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to load role limit", slog.String("role", string(role)))
		return domain.RoleLimit{}, err
	}
	return *limit, nil
}

func (s *roleLimitService) ListRoleLimits(ctx context.Context, actor domain.Actor, hotelID string) ([]domain.RoleLimit, error) {
	if !actor.Can(domain.CapApproveTransactions) && !actor.Can(domain.CapConfigureHotel) {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListRoleLimits(ctx, hotelID)
}

func validateCeiling(name string, value *decimal.Decimal) error {
	if value == nil {
		return nil
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
	}
	if !value.Equal(value.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", apperrors.ErrValidation, name)
	}
	return nil
}

// UpsertRoleLimit replaces a role's limits. Only owners may change them.
func (s *roleLimitService) UpsertRoleLimit(ctx context.Context, actor domain.Actor, hotelID string, role domain.Role, req dto.UpsertRoleLimitRequest) (*domain.RoleLimit, error) {
	if !actor.Can(domain.CapConfigureHotel) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Non-owner attempted to change role limits", slog.String("role", string(role)))
		return nil, apperrors.ErrForbidden
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	for name, value := range map[string]*decimal.Decimal{
		"maxTransactionAmount":  req.MaxTransactionAmount,
		"maxDailyAmount":        req.MaxDailyAmount,
		"requiresApprovalAbove": req.RequiresApprovalAbove,
	} {
		if err := validateCeiling(name, value); err != nil {
			return nil, err
		}
	}

	limit := domain.RoleLimit{
		HotelID:               hotelID,
		Role:                  role,
		MaxTransactionAmount:  req.MaxTransactionAmount,
		MaxDailyAmount:        req.MaxDailyAmount,
		RequiresApprovalAbove: req.RequiresApprovalAbove,
		CanVoidTransactions:   req.CanVoidTransactions,
		CanApproveWastage:     req.CanApproveWastage,
		AuditFields:           domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.repo.UpsertRoleLimit(ctx, limit); err != nil {
		s.LogError(ctx, err, "Failed to save role limit", slog.String("role", string(role)))
		return nil, err
	}
	s.LogInfo(ctx, "Role limit updated", slog.String("role", string(role)))
	return &limit, nil
}
