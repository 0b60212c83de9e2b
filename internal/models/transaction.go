package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions row.
type Transaction struct {
	TransactionID   string
	HotelID         string
	Amount          decimal.Decimal
	TxnType         string
	PaymentMethod   string
	Purpose         string
	Reference       string
	CreatedByRole   string
	Status          string
	ApprovedBy      sql.NullString
	RejectedBy      sql.NullString
	VoidedBy        sql.NullString
	RejectionReason sql.NullString
	VoidReason      sql.NullString
	AuditFields
}
