package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the vouchers row.
type Voucher struct {
	VoucherID      string
	HotelID        string
	Code           string
	DiscountType   string
	DiscountAmount decimal.Decimal
	MaxUses        int
	UsedCount      int
	ValidUntil     time.Time
	IsActive       bool
	AuditFields
}
