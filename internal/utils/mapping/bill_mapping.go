package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill, encoding the tax breakdown.
func ToModelBill(d domain.Bill) (models.Bill, error) {
	breakdown := d.TaxBreakdown
	if breakdown == nil {
		breakdown = domain.TaxBreakdown{}
	}
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return models.Bill{}, fmt.Errorf("encode tax breakdown: %w", err)
	}
	return models.Bill{
		BillID:         d.BillID,
		HotelID:        d.HotelID,
		OrderID:        d.OrderID,
		Policy:         string(d.Policy),
		VoucherID:      toNullString(d.VoucherID),
		TransactionID:  toNullString(d.TransactionID),
		PaymentMethod:  string(d.PaymentMethod),
		ItemIDs:        d.ItemIDs,
		Subtotal:       d.Subtotal,
		TaxBreakdown:   raw,
		TotalTax:       d.TotalTax,
		DiscountAmount: d.DiscountAmount,
		GrandTotal:     d.GrandTotal,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}, nil
}

// ToDomainBill converts a model Bill to a domain Bill, decoding the tax breakdown.
func ToDomainBill(m models.Bill) (domain.Bill, error) {
	var breakdown domain.TaxBreakdown
	if len(m.TaxBreakdown) > 0 {
		if err := json.Unmarshal(m.TaxBreakdown, &breakdown); err != nil {
			return domain.Bill{}, fmt.Errorf("decode tax breakdown of bill %s: %w", m.BillID, err)
		}
	}
	return domain.Bill{
		BillID:        m.BillID,
		HotelID:       m.HotelID,
		OrderID:       m.OrderID,
		Policy:        domain.BillingPolicy(m.Policy),
		VoucherID:     fromNullString(m.VoucherID),
		TransactionID: fromNullString(m.TransactionID),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		ItemIDs:       m.ItemIDs,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		BillTotals: domain.BillTotals{
			Subtotal:       m.Subtotal,
			TaxBreakdown:   breakdown,
			TotalTax:       m.TotalTax,
			DiscountAmount: m.DiscountAmount,
			GrandTotal:     m.GrandTotal,
		},
	}, nil
}
