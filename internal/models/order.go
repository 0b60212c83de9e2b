package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Order is the orders row.
type Order struct {
	OrderID     string
	HotelID     string
	TableNumber string
	Status      string
	AuditFields
}

// OrderItem is the order_items row.
type OrderItem struct {
	ItemID        string
	OrderID       string
	HotelID       string
	MenuItemID    string
	Name          string
	Quantity      int
	UnitPrice     decimal.Decimal
	Status        string
	DeclineReason sql.NullString
	BillID        sql.NullString
	AuditFields
}
