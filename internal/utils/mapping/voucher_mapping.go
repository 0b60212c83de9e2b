package mapping

import (
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:      d.VoucherID,
		HotelID:        d.HotelID,
		Code:           d.Code,
		DiscountType:   string(d.DiscountType),
		DiscountAmount: d.DiscountAmount,
		MaxUses:        d.MaxUses,
		UsedCount:      d.UsedCount,
		ValidUntil:     d.ValidUntil,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:      m.VoucherID,
		HotelID:        m.HotelID,
		Code:           m.Code,
		DiscountType:   domain.DiscountType(m.DiscountType),
		DiscountAmount: m.DiscountAmount,
		MaxUses:        m.MaxUses,
		UsedCount:      m.UsedCount,
		ValidUntil:     m.ValidUntil,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherSlice converts a slice of model Vouchers
func ToDomainVoucherSlice(ms []models.Voucher) []domain.Voucher {
	ds := make([]domain.Voucher, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucher(m)
	}
	return ds
}
