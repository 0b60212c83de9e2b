package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies a money movement.
type TxnType string

const (
	TxnCashIn        TxnType = "cash_in"
	TxnPOSIn         TxnType = "pos_in"
	TxnFonepayIn     TxnType = "fonepay_in"
	TxnCashOut       TxnType = "cash_out"
	TxnVendorPayment TxnType = "vendor_payment"
	TxnRevenue       TxnType = "revenue"
	TxnExpense       TxnType = "expense"
	TxnMiscellaneous TxnType = "miscellaneous"
)

// IsValid reports whether t is a known transaction type.
func (t TxnType) IsValid() bool {
	switch t {
	case TxnCashIn, TxnPOSIn, TxnFonepayIn, TxnCashOut, TxnVendorPayment,
		TxnRevenue, TxnExpense, TxnMiscellaneous:
		return true
	}
	return false
}

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentPOS          PaymentMethod = "pos"
	PaymentFonepay      PaymentMethod = "fonepay"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentOther        PaymentMethod = "other"
)

// IsValid reports whether p is a known payment method.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentPOS, PaymentFonepay, PaymentBankTransfer, PaymentCheque, PaymentOther:
		return true
	}
	return false
}

// IncomingTxnType maps a bill's payment method to the ledger entry type.
func (p PaymentMethod) IncomingTxnType() TxnType {
	switch p {
	case PaymentCash:
		return TxnCashIn
	case PaymentPOS:
		return TxnPOSIn
	case PaymentFonepay:
		return TxnFonepayIn
	default:
		return TxnRevenue
	}
}

// TxnStatus is the approval state of a transaction.
type TxnStatus string

const (
	TxnPosted          TxnStatus = "posted"
	TxnPendingApproval TxnStatus = "pending_approval"
	TxnApproved        TxnStatus = "approved"
	TxnRejected        TxnStatus = "rejected"
	TxnVoided          TxnStatus = "voided"
)

// IsValid reports whether s is a known transaction status.
func (s TxnStatus) IsValid() bool {
	switch s {
	case TxnPosted, TxnPendingApproval, TxnApproved, TxnRejected, TxnVoided:
		return true
	}
	return false
}

// CountsTowardBalance reports whether the status is included in totals.
func (s TxnStatus) CountsTowardBalance() bool {
	return s == TxnPosted || s == TxnApproved
}

// CanVoid reports whether a transaction in status s may be voided.
func (s TxnStatus) CanVoid() bool {
	return s == TxnPosted || s == TxnApproved
}

// Transaction is one money movement in a hotel's ledger.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	HotelID         string          `json:"hotelID"`
	Amount          decimal.Decimal `json:"amount"`
	TxnType         TxnType         `json:"txnType"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Purpose         string          `json:"purpose"`
	Reference       string          `json:"reference"`
	CreatedByRole   Role            `json:"createdByRole"`
	Status          TxnStatus       `json:"status"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	RejectedBy      *string         `json:"rejectedBy,omitempty"`
	VoidedBy        *string         `json:"voidedBy,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	VoidReason      *string         `json:"voidReason,omitempty"`
	AuditFields
}

// NewTransaction holds the caller-supplied fields of a transaction to record.
type NewTransaction struct {
	Amount        decimal.Decimal
	TxnType       TxnType
	PaymentMethod PaymentMethod
	Purpose       string
	Reference     string
}

// SiteDay returns the [start, end) bounds of the calendar day containing t in loc.
func SiteDay(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// TxnStatusChange describes a conditional status update. The actor is stored
// as approver, rejecter or voider depending on To.
type TxnStatusChange struct {
	HotelID       string
	TransactionID string
	From          []TxnStatus
	To            TxnStatus
	ActorID       string
	Reason        *string
	At            time.Time
}
