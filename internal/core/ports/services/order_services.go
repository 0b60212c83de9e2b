package services

import (
	"context"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrder retrieves an order with its KOT items.
	GetOrder(ctx context.Context, hotelID, orderID string) (*domain.Order, error)
}

// OrderWriterSvc defines operations that open orders and add items
type OrderWriterSvc interface {
	// CreateOrder opens an order for a table with its first items.
	CreateOrder(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateOrderRequest) (*domain.Order, error)

	// AddItems appends items to an open order.
	AddItems(ctx context.Context, actor domain.Actor, hotelID, orderID string, req dto.AddOrderItemsRequest) ([]domain.OrderItem, error)
}

// KOTStateMachineSvc defines the KOT item lifecycle operations
type KOTStateMachineSvc interface {
	Approve(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error)
	MarkReady(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error)
	Decline(ctx context.Context, actor domain.Actor, hotelID, itemID, reason string) (*domain.OrderItem, error)
	Cancel(ctx context.Context, actor domain.Actor, hotelID, itemID, reason string) (*domain.OrderItem, error)
	Complete(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error)

	// TransitionItem dispatches to the operation selected by target.
	TransitionItem(ctx context.Context, actor domain.Actor, hotelID, itemID string, target domain.OrderItemStatus, reason string) (*domain.OrderItem, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
	KOTStateMachineSvc
}
