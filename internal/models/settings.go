package models

import "github.com/shopspring/decimal"

// TaxSetting is the tax_settings row.
type TaxSetting struct {
	ID       int64
	HotelID  string
	TaxType  string
	Label    string
	Percent  decimal.Decimal
	IsActive bool
	AuditFields
}

// RoleLimit is the role_limits row. NULL ceilings mean unlimited.
type RoleLimit struct {
	HotelID               string
	Role                  string
	MaxTransactionAmount  decimal.NullDecimal
	MaxDailyAmount        decimal.NullDecimal
	RequiresApprovalAbove decimal.NullDecimal
	CanVoidTransactions   bool
	CanApproveWastage     bool
	AuditFields
}
