package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
)

// PreviewBillParams are the query parameters of a bill preview.
type PreviewBillParams struct {
	Policy      string `form:"policy" binding:"omitempty,oneof=table_check guest_invoice"`
	VoucherCode string `form:"voucherCode"`
}

// FinalizeBillRequest settles an order. BillID doubles as the idempotency key.
type FinalizeBillRequest struct {
	BillID        string `json:"billId" binding:"omitempty,max=64"`
	Policy        string `json:"policy" binding:"omitempty,oneof=table_check guest_invoice"`
	VoucherCode   string `json:"voucherCode"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=cash pos fonepay bank_transfer cheque other"`
}

// TaxLineResponse is one applied tax.
type TaxLineResponse struct {
	TaxType string `json:"taxType"`
	Label   string `json:"label"`
	Rate    string `json:"rate"`
	Amount  string `json:"amount"`
}

// BillTotalsResponse is the calculation result.
type BillTotalsResponse struct {
	Subtotal       string            `json:"subtotal"`
	TaxBreakdown   []TaxLineResponse `json:"taxBreakdown"`
	TaxesByLabel   json.RawMessage   `json:"taxesByLabel"`
	TotalTax       string            `json:"totalTax"`
	DiscountAmount string            `json:"discountAmount"`
	GrandTotal     string            `json:"grandTotal"`
}

// BillResponse is a finalized bill.
type BillResponse struct {
	BillID        string    `json:"billID"`
	OrderID       string    `json:"orderID"`
	Policy        string    `json:"policy"`
	VoucherID     *string   `json:"voucherID,omitempty"`
	TransactionID *string   `json:"transactionID,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
	ItemIDs       []string  `json:"itemIDs"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	BillTotalsResponse
}

// ToBillTotalsResponse converts domain.BillTotals to its DTO.
func ToBillTotalsResponse(t *domain.BillTotals) BillTotalsResponse {
	lines := make([]TaxLineResponse, len(t.TaxBreakdown))
	for i, line := range t.TaxBreakdown {
		lines[i] = TaxLineResponse{
			TaxType: string(line.TaxType),
			Label:   line.Label,
			Rate:    Money(line.Rate),
			Amount:  Money(line.Amount),
		}
	}
	byLabel, err := t.TaxBreakdown.OrderedJSONObject()
	if err != nil {
		byLabel = json.RawMessage(`{}`)
	}
	return BillTotalsResponse{
		Subtotal:       Money(t.Subtotal),
		TaxBreakdown:   lines,
		TaxesByLabel:   byLabel,
		TotalTax:       Money(t.TotalTax),
		DiscountAmount: Money(t.DiscountAmount),
		GrandTotal:     Money(t.GrandTotal),
	}
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:             b.BillID,
		OrderID:            b.OrderID,
		Policy:             string(b.Policy),
		VoucherID:          b.VoucherID,
		TransactionID:      b.TransactionID,
		PaymentMethod:      string(b.PaymentMethod),
		ItemIDs:            b.ItemIDs,
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt,
		BillTotalsResponse: ToBillTotalsResponse(&b.BillTotals),
	}
}
