package dto

import (
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertRoleLimitRequest replaces a role's ceilings. Omitted ceilings are unlimited.
type UpsertRoleLimitRequest struct {
	MaxTransactionAmount  *decimal.Decimal `json:"maxTransactionAmount"`
	MaxDailyAmount        *decimal.Decimal `json:"maxDailyAmount"`
	RequiresApprovalAbove *decimal.Decimal `json:"requiresApprovalAbove"`
	CanVoidTransactions   bool             `json:"canVoidTransactions"`
	CanApproveWastage     bool             `json:"canApproveWastage"`
}

// RoleLimitResponse is the API shape of a role limit.
type RoleLimitResponse struct {
	Role                  string    `json:"role"`
	MaxTransactionAmount  *string   `json:"maxTransactionAmount"`
	MaxDailyAmount        *string   `json:"maxDailyAmount"`
	RequiresApprovalAbove *string   `json:"requiresApprovalAbove"`
	CanVoidTransactions   bool      `json:"canVoidTransactions"`
	CanApproveWastage     bool      `json:"canApproveWastage"`
	LastUpdatedAt         time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy         string    `json:"lastUpdatedBy"`
}

// ToRoleLimitResponse converts a domain.RoleLimit to its DTO.
func ToRoleLimitResponse(l *domain.RoleLimit) RoleLimitResponse {
	return RoleLimitResponse{
		Role:                  string(l.Role),
		MaxTransactionAmount:  moneyPtr(l.MaxTransactionAmount),
		MaxDailyAmount:        moneyPtr(l.MaxDailyAmount),
		RequiresApprovalAbove: moneyPtr(l.RequiresApprovalAbove),
		CanVoidTransactions:   l.CanVoidTransactions,
		CanApproveWastage:     l.CanApproveWastage,
		LastUpdatedAt:         l.LastUpdatedAt,
		LastUpdatedBy:         l.LastUpdatedBy,
	}
}

// ToRoleLimitResponses converts a slice of domain.RoleLimit.
func ToRoleLimitResponses(limits []domain.RoleLimit) []RoleLimitResponse {
	responses := make([]RoleLimitResponse, len(limits))
	for i := range limits {
		responses[i] = ToRoleLimitResponse(&limits[i])
	}
	return responses
}

// UpsertTaxSettingRequest creates or updates a tax.
type UpsertTaxSettingRequest struct {
	Label    string          `json:"label" binding:"required,max=100"`
	Percent  decimal.Decimal `json:"percent"`
	IsActive *bool           `json:"isActive"`
}

// TaxSettingResponse is the API shape of a tax setting.
type TaxSettingResponse struct {
	ID       int64  `json:"id"`
	TaxType  string `json:"taxType"`
	Label    string `json:"label"`
	Percent  string `json:"percent"`
	IsActive bool   `json:"isActive"`
}

// ToTaxSettingResponse converts a domain.TaxSetting to its DTO.
func ToTaxSettingResponse(s *domain.TaxSetting) TaxSettingResponse {
	return TaxSettingResponse{
		ID:       s.ID,
		TaxType:  string(s.TaxType),
		Label:    s.Label,
		Percent:  Money(s.Percent),
		IsActive: s.IsActive,
	}
}

// ToTaxSettingResponses converts a slice of domain.TaxSetting.
func ToTaxSettingResponses(settings []domain.TaxSetting) []TaxSettingResponse {
	responses := make([]TaxSettingResponse, len(settings))
	for i := range settings {
		responses[i] = ToTaxSettingResponse(&settings[i])
	}
	return responses
}
