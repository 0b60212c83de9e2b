package dto

import (
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a money movement.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"dgt0"`
	TxnType       string          `json:"txnType" binding:"required,oneof=cash_in pos_in fonepay_in cash_out vendor_payment revenue expense miscellaneous"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash pos fonepay bank_transfer cheque other"`
	Purpose       string          `json:"purpose" binding:"max=500"`
	Reference     string          `json:"reference" binding:"max=200"`
}

// ToNewTransaction converts the request to domain input.
func (r CreateTransactionRequest) ToNewTransaction() domain.NewTransaction {
	return domain.NewTransaction{
		Amount:        r.Amount,
		TxnType:       domain.TxnType(r.TxnType),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Purpose:       r.Purpose,
		Reference:     r.Reference,
	}
}

// ReasonRequest carries a mandatory reason for reject and void.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,reason"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=posted pending_approval approved rejected voided"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is the API shape of a transaction.
type TransactionResponse struct {
	TransactionID   string    `json:"transactionID"`
	Amount          string    `json:"amount"`
	TxnType         string    `json:"txnType"`
	PaymentMethod   string    `json:"paymentMethod"`
	Purpose         string    `json:"purpose"`
	Reference       string    `json:"reference"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"createdBy"`
	CreatedByRole   string    `json:"createdByRole"`
	CreatedAt       time.Time `json:"createdAt"`
	ApprovedBy      *string   `json:"approvedBy,omitempty"`
	RejectedBy      *string   `json:"rejectedBy,omitempty"`
	VoidedBy        *string   `json:"voidedBy,omitempty"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	VoidReason      *string   `json:"voidReason,omitempty"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy   string    `json:"lastUpdatedBy"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// DailyTotalResponse is an actor's counted total for one site-local day.
type DailyTotalResponse struct {
	UserID string `json:"userID"`
	Day    string `json:"day"`
	Total  string `json:"total"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		Amount:          Money(t.Amount),
		TxnType:         string(t.TxnType),
		PaymentMethod:   string(t.PaymentMethod),
		Purpose:         t.Purpose,
		Reference:       t.Reference,
		Status:          string(t.Status),
		CreatedBy:       t.CreatedBy,
		CreatedByRole:   string(t.CreatedByRole),
		CreatedAt:       t.CreatedAt,
		ApprovedBy:      t.ApprovedBy,
		RejectedBy:      t.RejectedBy,
		VoidedBy:        t.VoidedBy,
		RejectionReason: t.RejectionReason,
		VoidReason:      t.VoidReason,
		LastUpdatedAt:   t.LastUpdatedAt,
		LastUpdatedBy:   t.LastUpdatedBy,
	}
}

// ToListTransactionsResponse converts a page of transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: responses, NextToken: nextToken}
}
