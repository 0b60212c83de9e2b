package mapping

import (
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToDomainTaxSetting converts a model TaxSetting to a domain TaxSetting
func ToDomainTaxSetting(m models.TaxSetting) domain.TaxSetting {
	return domain.TaxSetting{
		ID:          m.ID,
		HotelID:     m.HotelID,
		TaxType:     domain.TaxType(m.TaxType),
		Label:       m.Label,
		Percent:     m.Percent,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRoleLimit converts a domain RoleLimit to a model RoleLimit
func ToModelRoleLimit(d domain.RoleLimit) models.RoleLimit {
	return models.RoleLimit{
		HotelID:               d.HotelID,
		Role:                  string(d.Role),
		MaxTransactionAmount:  toNullDecimal(d.MaxTransactionAmount),
		MaxDailyAmount:        toNullDecimal(d.MaxDailyAmount),
		RequiresApprovalAbove: toNullDecimal(d.RequiresApprovalAbove),
		CanVoidTransactions:   d.CanVoidTransactions,
		CanApproveWastage:     d.CanApproveWastage,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRoleLimit converts a model RoleLimit to a domain RoleLimit
func ToDomainRoleLimit(m models.RoleLimit) domain.RoleLimit {
	return domain.RoleLimit{
		HotelID:               m.HotelID,
		Role:                  domain.Role(m.Role),
		MaxTransactionAmount:  fromNullDecimal(m.MaxTransactionAmount),
		MaxDailyAmount:        fromNullDecimal(m.MaxDailyAmount),
		RequiresApprovalAbove: fromNullDecimal(m.RequiresApprovalAbove),
		CanVoidTransactions:   m.CanVoidTransactions,
		CanApproveWastage:     m.CanApproveWastage,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
