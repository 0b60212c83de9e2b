package mapping

import (
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		HotelID:         d.HotelID,
		Amount:          d.Amount,
		TxnType:         string(d.TxnType),
		PaymentMethod:   string(d.PaymentMethod),
		Purpose:         d.Purpose,
		Reference:       d.Reference,
		CreatedByRole:   string(d.CreatedByRole),
		Status:          string(d.Status),
		ApprovedBy:      toNullString(d.ApprovedBy),
		RejectedBy:      toNullString(d.RejectedBy),
		VoidedBy:        toNullString(d.VoidedBy),
		RejectionReason: toNullString(d.RejectionReason),
		VoidReason:      toNullString(d.VoidReason),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		HotelID:         m.HotelID,
		Amount:          m.Amount,
		TxnType:         domain.TxnType(m.TxnType),
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		Purpose:         m.Purpose,
		Reference:       m.Reference,
		CreatedByRole:   domain.Role(m.CreatedByRole),
		Status:          domain.TxnStatus(m.Status),
		ApprovedBy:      fromNullString(m.ApprovedBy),
		RejectedBy:      fromNullString(m.RejectedBy),
		VoidedBy:        fromNullString(m.VoidedBy),
		RejectionReason: fromNullString(m.RejectionReason),
		VoidReason:      fromNullString(m.VoidReason),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
