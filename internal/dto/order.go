package dto

import (
	"time"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one KOT line to add to an order.
type OrderItemRequest struct {
	MenuItemID string          `json:"menuItemID" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice" binding:"dgte0"`
}

// CreateOrderRequest opens a new order for a table.
type CreateOrderRequest struct {
	TableNumber string             `json:"tableNumber" binding:"required"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AddOrderItemsRequest adds items to an open order.
type AddOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateKOTItemRequest moves a KOT item to a new status.
type UpdateKOTItemRequest struct {
	Status        string `json:"status" binding:"required,oneof=approved ready declined cancelled completed"`
	DeclineReason string `json:"declineReason"`
}

// OrderItemResponse is the API shape of a KOT item.
type OrderItemResponse struct {
	ItemID        string    `json:"itemID"`
	OrderID       string    `json:"orderID"`
	MenuItemID    string    `json:"menuItemID"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	UnitPrice     string    `json:"unitPrice"`
	LineTotal     string    `json:"lineTotal"`
	Status        string    `json:"status"`
	DeclineReason *string   `json:"declineReason,omitempty"`
	BillID        *string   `json:"billID,omitempty"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// OrderResponse is the API shape of an order.
type OrderResponse struct {
	OrderID     string              `json:"orderID"`
	TableNumber string              `json:"tableNumber"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ToOrderItemResponse converts a domain.OrderItem to OrderItemResponse DTO.
func ToOrderItemResponse(item *domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ItemID:        item.ItemID,
		OrderID:       item.OrderID,
		MenuItemID:    item.MenuItemID,
		Name:          item.Name,
		Quantity:      item.Quantity,
		UnitPrice:     Money(item.UnitPrice),
		LineTotal:     Money(item.LineTotal()),
		Status:        string(item.Status),
		DeclineReason: item.DeclineReason,
		BillID:        item.BillID,
		Version:       item.Version,
		CreatedAt:     item.CreatedAt,
		CreatedBy:     item.CreatedBy,
		LastUpdatedAt: item.LastUpdatedAt,
		LastUpdatedBy: item.LastUpdatedBy,
	}
}

// ToOrderItemResponses converts a slice of domain.OrderItem.
func ToOrderItemResponses(items []domain.OrderItem) []OrderItemResponse {
	responses := make([]OrderItemResponse, len(items))
	for i := range items {
		responses[i] = ToOrderItemResponse(&items[i])
	}
	return responses
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:     o.OrderID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Items:       ToOrderItemResponses(o.Items),
		CreatedAt:   o.CreatedAt,
		CreatedBy:   o.CreatedBy,
	}
}
