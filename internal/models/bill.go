package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the bills row. TaxBreakdown holds the JSONB array of applied taxes.
type Bill struct {
	BillID         string
	HotelID        string
	OrderID        string
	Policy         string
	VoucherID      sql.NullString
	TransactionID  sql.NullString
	PaymentMethod  string
	ItemIDs        []string
	Subtotal       decimal.Decimal
	TaxBreakdown   []byte
	TotalTax       decimal.Decimal
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal
	CreatedAt      time.Time
	CreatedBy      string
}
