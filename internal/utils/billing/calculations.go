package billing

import (
	"fmt"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateSubtotal sums each item's line total, rounding to 2 places.
func CalculateSubtotal(items []domain.OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal.Round(2)
}

// ApplyTaxes cascades the active taxes over subtotal in precedence order.
// Each tax is charged on the running total including every earlier tax.
// It returns the ordered breakdown and the final running total.
func ApplyTaxes(subtotal decimal.Decimal, settings []domain.TaxSetting) (domain.TaxBreakdown, decimal.Decimal) {
	running := subtotal
	breakdown := domain.TaxBreakdown{}
	for _, tax := range domain.SortTaxes(settings) {
		amount := running.Mul(tax.Percent).Div(hundred).Round(2)
		running = running.Add(amount).Round(2)
		label := tax.Label
		if label == "" {
			label = string(tax.TaxType)
		}
		breakdown = append(breakdown, domain.TaxLine{
			TaxType: tax.TaxType,
			Label:   label,
			Rate:    tax.Percent,
			Amount:  amount,
		})
	}
	return breakdown, running
}

// CalculateDiscount returns the voucher discount for total. The result never
// exceeds total.
func CalculateDiscount(total decimal.Decimal, voucher *domain.Voucher) (decimal.Decimal, error) {
	if voucher == nil {
		return decimal.Zero, nil
	}
	var discount decimal.Decimal
	switch voucher.DiscountType {
	case domain.DiscountPercentage:
		discount = total.Mul(voucher.DiscountAmount).Div(hundred).Round(2)
	case domain.DiscountFixed:
		discount = voucher.DiscountAmount
	default:
		return decimal.Zero, fmt.Errorf("unknown discount type '%s' for voucher %s", voucher.DiscountType, voucher.Code)
	}
	if discount.GreaterThan(total) {
		discount = total
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount, nil
}

// CalculateBill computes the bill totals for the eligible items.
func CalculateBill(items []domain.OrderItem, taxes []domain.TaxSetting, voucher *domain.Voucher) (domain.BillTotals, error) {
	subtotal := CalculateSubtotal(items)
	breakdown, running := ApplyTaxes(subtotal, taxes)

	totalTax := decimal.Zero
	for _, line := range breakdown {
		totalTax = totalTax.Add(line.Amount)
	}

	discount, err := CalculateDiscount(running, voucher)
	if err != nil {
		return domain.BillTotals{}, err
	}
	grandTotal := running.Sub(discount).Round(2)
	if grandTotal.IsNegative() {
		grandTotal = decimal.Zero
	}

	return domain.BillTotals{
		Subtotal:       subtotal,
		TaxBreakdown:   breakdown,
		TotalTax:       totalTax.Round(2),
		DiscountAmount: discount,
		GrandTotal:     grandTotal,
	}, nil
}
