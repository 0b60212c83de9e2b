package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillingPolicy decides which items of an order a bill covers.
type BillingPolicy string

const (
	// PolicyTableCheck bills everything the kitchen accepted, served or not.
	// Settling the check marks the unserved items served.
	PolicyTableCheck BillingPolicy = "table_check"
	// PolicyGuestInvoice bills only items already marked served.
	PolicyGuestInvoice BillingPolicy = "guest_invoice"
)

// IsValid reports whether p is a known policy.
func (p BillingPolicy) IsValid() bool {
	return p == PolicyTableCheck || p == PolicyGuestInvoice
}

// EligibleStatuses lists item statuses the policy bills.
func (p BillingPolicy) EligibleStatuses() []OrderItemStatus {
	if p == PolicyGuestInvoice {
		return []OrderItemStatus{ItemCompleted}
	}
	return []OrderItemStatus{ItemApproved, ItemReady, ItemCompleted}
}

// IsEligible reports whether the item belongs on a bill under p.
func (p BillingPolicy) IsEligible(item OrderItem) bool {
	if item.BillID != nil {
		return false
	}
	for _, s := range p.EligibleStatuses() {
		if item.Status == s {
			return true
		}
	}
	return false
}

// BlocksSettlement reports whether the item keeps the order from being closed
// under p: it can still move forward but would not be on the bill, so closing
// the order would leave it unbillable.
func (p BillingPolicy) BlocksSettlement(item OrderItem) bool {
	return item.BillID == nil && !item.Status.IsTerminal() && !p.IsEligible(item)
}

// TaxLine is one applied tax in cascade order.
type TaxLine struct {
	TaxType TaxType         `json:"taxType"`
	Label   string          `json:"label"`
	Rate    decimal.Decimal `json:"rate"`
	Amount  decimal.Decimal `json:"amount"`
}

// TaxBreakdown is an ordered list of applied taxes. It marshals as a JSON
// array and also exposes a label-keyed view.
type TaxBreakdown []TaxLine

// ByLabel returns the label-keyed view together with label order.
func (b TaxBreakdown) ByLabel() (map[string]TaxLine, []string) {
	m := make(map[string]TaxLine, len(b))
	order := make([]string, 0, len(b))
	for _, line := range b {
		if _, seen := m[line.Label]; !seen {
			order = append(order, line.Label)
		}
		m[line.Label] = line
	}
	return m, order
}

// OrderedJSONObject renders the breakdown as a JSON object whose keys keep
// cascade order, for clients that expect label → {rate, amount}.
func (b TaxBreakdown) OrderedJSONObject() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, line := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(line.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, `:{"rate":%q,"amount":%q}`, line.Rate.StringFixed(2), line.Amount.StringFixed(2))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BillTotals is the output of the billing calculation.
type BillTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxBreakdown   TaxBreakdown    `json:"taxBreakdown"`
	TotalTax       decimal.Decimal `json:"totalTax"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// Bill is a finalized, persisted bill for an order.
type Bill struct {
	BillID        string        `json:"billID"`
	HotelID       string        `json:"hotelID"`
	OrderID       string        `json:"orderID"`
	Policy        BillingPolicy `json:"policy"`
	VoucherID     *string       `json:"voucherID,omitempty"`
	TransactionID *string       `json:"transactionID,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	ItemIDs       []string      `json:"itemIDs"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	BillTotals
}
