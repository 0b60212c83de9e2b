package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DiscountType is how a voucher reduces the bill.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// IsValid reports whether d is a known discount type.
func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountFixed
}

// Voucher is a discount code issued by a hotel.
type Voucher struct {
	VoucherID      string          `json:"voucherID"`
	HotelID        string          `json:"hotelID"`
	Code           string          `json:"code"`
	DiscountType   DiscountType    `json:"discountType"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	MaxUses        int             `json:"maxUses"`
	UsedCount      int             `json:"usedCount"`
	ValidUntil     time.Time       `json:"validUntil"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// VoucherRedemption records one use of a voucher under an idempotency reference.
type VoucherRedemption struct {
	VoucherID  string    `json:"voucherID"`
	Reference  string    `json:"reference"`
	RedeemedBy string    `json:"redeemedBy"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

// NormalizeVoucherCode trims and upper-cases a code.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckRedeemable reports why the voucher cannot be used at now, in the order
// expired, exhausted, inactive. A nil result means it can be redeemed.
func (v Voucher) CheckRedeemable(now time.Time) error {
	if now.After(v.ValidUntil) {
		return apperrors.ErrVoucherExpired
	}
	if v.UsedCount >= v.MaxUses {
		return apperrors.ErrVoucherExhausted
	}
	if !v.IsActive {
		return apperrors.ErrVoucherInactive
	}
	return nil
}
