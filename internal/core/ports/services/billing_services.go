package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// BillingSvcFacade defines bill calculation and settlement
type BillingSvcFacade interface {
	// PreviewBill computes the bill without side effects.
	PreviewBill(ctx context.Context, hotelID, orderID string, policy domain.BillingPolicy, voucherCode string) (*domain.BillTotals, error)

	// FinalizeBill settles the order in one database transaction. The
	// boolean is false when an existing bill was replayed.
	FinalizeBill(ctx context.Context, actor domain.Actor, hotelID, orderID string, req dto.FinalizeBillRequest) (*domain.Bill, bool, error)
}
