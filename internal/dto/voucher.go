package dto

import (
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest issues a voucher. An empty code is generated.
type CreateVoucherRequest struct {
	Code           string          `json:"code" binding:"omitempty,max=32"`
	DiscountType   string          `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountAmount decimal.Decimal `json:"discountAmount" binding:"dgt0"`
	MaxUses        int             `json:"maxUses" binding:"required,gte=1"`
	ValidUntil     time.Time       `json:"validUntil" binding:"required"`
	IsActive       *bool           `json:"isActive"`
}

// ValidateVoucherRequest checks a code without using it.
type ValidateVoucherRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateVoucherResponse always returns 200; Valid tells the outcome.
type ValidateVoucherResponse struct {
	Valid   bool             `json:"valid"`
	Voucher *VoucherResponse `json:"voucher,omitempty"`
	Message string           `json:"message,omitempty"`
}

// RedeemVoucherRequest uses a voucher once per reference.
type RedeemVoucherRequest struct {
	VoucherID string `json:"voucherId" binding:"required"`
	Reference string `json:"reference" binding:"omitempty,max=64"`
}

// VoucherResponse is the API shape of a voucher.
type VoucherResponse struct {
	VoucherID      string    `json:"voucherID"`
	Code           string    `json:"code"`
	DiscountType   string    `json:"discountType"`
	DiscountAmount string    `json:"discountAmount"`
	MaxUses        int       `json:"maxUses"`
	UsedCount      int       `json:"usedCount"`
	ValidUntil     time.Time `json:"validUntil"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:      v.VoucherID,
		Code:           v.Code,
		DiscountType:   string(v.DiscountType),
		DiscountAmount: Money(v.DiscountAmount),
		MaxUses:        v.MaxUses,
		UsedCount:      v.UsedCount,
		ValidUntil:     v.ValidUntil,
		IsActive:       v.IsActive,
		CreatedAt:      v.CreatedAt,
		CreatedBy:      v.CreatedBy,
	}
}

// ToVoucherResponses converts a slice of domain.Voucher.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	responses := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = ToVoucherResponse(&vouchers[i])
	}
	return responses
}
