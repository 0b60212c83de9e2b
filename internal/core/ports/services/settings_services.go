package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// RoleLimitSvcFacade manages per-role financial ceilings
type RoleLimitSvcFacade interface {
	// GetRoleLimit returns the role's limits, or no limits when none are configured.
	GetRoleLimit(ctx context.Context, hotelID string, role domain.Role) (domain.RoleLimit, error)

	ListRoleLimits(ctx context.Context, actor domain.Actor, hotelID string) ([]domain.RoleLimit, error)

	// UpsertRoleLimit is restricted to owners.
	UpsertRoleLimit(ctx context.Context, actor domain.Actor, hotelID string, role domain.Role, req dto.UpsertRoleLimitRequest) (*domain.RoleLimit, error)
}

// TaxSvcFacade manages the hotel's tax schedule
type TaxSvcFacade interface {
	ListTaxSettings(ctx context.Context, hotelID string) ([]domain.TaxSetting, error)

	// UpsertTaxSetting is restricted to owners.
	UpsertTaxSetting(ctx context.Context, actor domain.Actor, hotelID string, taxType domain.TaxType, req dto.UpsertTaxSettingRequest) (*domain.TaxSetting, error)
}
