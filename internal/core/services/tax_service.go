package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

var taxTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

type taxService struct {
	BaseService
	repo portsrepo.TaxSettingRepository
}

// NewTaxService creates a new TaxService.
func NewTaxService(repo portsrepo.TaxSettingRepository, options ...ServiceOption) portssvc.TaxSvcFacade {
	svc := &taxService{repo: repo}
	svc.apply(options)
	return svc
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func (s *taxService) ListTaxSettings(ctx context.Context, hotelID string) ([]domain.TaxSetting, error) {
	return s.repo.ListTaxSettings(ctx, hotelID)
}

// UpsertTaxSetting creates or updates the hotel's tax of the given type.
func (s *taxService) UpsertTaxSetting(ctx context.Context, actor domain.Actor, hotelID string, taxType domain.TaxType, req dto.UpsertTaxSettingRequest) (*domain.TaxSetting, error) {
	if !actor.Can(domain.CapConfigureHotel) {
		return nil, apperrors.ErrForbidden
	}
	if !taxTypePattern.MatchString(string(taxType)) {
		return nil, fmt.Errorf("%w: tax type must be a lower-case identifier", apperrors.ErrValidation)
	}
	if req.Percent.IsNegative() || req.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: percent must be between 0 and 100", apperrors.ErrValidation)
	}
	if !req.Percent.Equal(req.Percent.Round(2)) {
		return nil, fmt.Errorf("%w: percent must have at most 2 decimal places", apperrors.ErrValidation)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if isActive {
		existing, err := s.repo.ListTaxSettings(ctx, hotelID)
		if err != nil {
			return nil, err
		}
		if owner, taken := domain.ActiveLabelOwner(existing, taxType, req.Label); taken {
			s.LogWarn(ctx, apperrors.ErrDuplicate, "Tax label already in use", slog.String("tax_type", string(taxType)), slog.String("owner", string(owner)))
			return nil, fmt.Errorf("%w: label %q is already used by active tax %s", apperrors.ErrDuplicate, strings.TrimSpace(req.Label), owner)
		}
	}
	saved, err := s.repo.UpsertTaxSetting(ctx, domain.TaxSetting{
		HotelID:     hotelID,
		TaxType:     taxType,
		Label:       strings.TrimSpace(req.Label),
		Percent:     req.Percent,
		IsActive:    isActive,
		AuditFields: domain.NewAuditFields(actor.UserID, s.Now()),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save tax setting", slog.String("tax_type", string(taxType)))
		return nil, err
	}
	s.LogInfo(ctx, "Tax setting updated", slog.String("tax_type", string(taxType)))
	return saved, nil
}
