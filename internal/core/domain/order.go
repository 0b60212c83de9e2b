package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MinReasonLength is the shortest accepted decline, cancel, reject or void reason.
const MinReasonLength = 10

// OrderStatus tracks whether a table's tab is still open.
type OrderStatus string

const (
	OrderOpen   OrderStatus = "open"
	OrderClosed OrderStatus = "closed"
)

// Order is a table's current tab.
type Order struct {
	OrderID     string      `json:"orderID"`
	HotelID     string      `json:"hotelID"`
	TableNumber string      `json:"tableNumber"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items,omitempty"`
	AuditFields
}

// OrderItemStatus is the KOT item lifecycle state.
type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "pending"
	ItemApproved  OrderItemStatus = "approved"
	ItemReady     OrderItemStatus = "ready"
	ItemDeclined  OrderItemStatus = "declined"
	ItemCancelled OrderItemStatus = "cancelled"
	ItemCompleted OrderItemStatus = "completed"
)

// IsValid reports whether s is a known item status.
func (s OrderItemStatus) IsValid() bool {
	switch s {
	case ItemPending, ItemApproved, ItemReady, ItemDeclined, ItemCancelled, ItemCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderItemStatus) IsTerminal() bool {
	return s == ItemDeclined || s == ItemCancelled || s == ItemCompleted
}

// RequiresReason reports whether the state must carry a decline reason.
func (s OrderItemStatus) RequiresReason() bool {
	return s == ItemDeclined || s == ItemCancelled
}

var itemTransitions = map[OrderItemStatus][]OrderItemStatus{
	ItemPending:  {ItemApproved, ItemDeclined, ItemCancelled},
	ItemApproved: {ItemReady, ItemDeclined, ItemCancelled},
	ItemReady:    {ItemCompleted, ItemCancelled},
}

// CanTransition reports whether the state machine allows from → to.
func CanTransition(from, to OrderItemStatus) bool {
	for _, next := range itemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiredCapability returns the capability an actor needs to move an item into target.
func RequiredCapability(target OrderItemStatus) (Capability, bool) {
	switch target {
	case ItemApproved, ItemReady:
		return CapAdvanceKOT, true
	case ItemDeclined, ItemCancelled:
		return CapRejectKOT, true
	case ItemCompleted:
		return CapServeKOT, true
	}
	return "", false
}

// OrderItem is one KOT line within an order.
type OrderItem struct {
	ItemID        string          `json:"itemID"`
	OrderID       string          `json:"orderID"`
	HotelID       string          `json:"hotelID"`
	MenuItemID    string          `json:"menuItemID"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Status        OrderItemStatus `json:"status"`
	DeclineReason *string         `json:"declineReason,omitempty"`
	BillID        *string         `json:"billID,omitempty"`
	AuditFields
}

// LineTotal is unitPrice × quantity rounded to 2 places.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// ValidateNewItem checks quantity and price at creation time.
func ValidateNewItem(menuItemID string, quantity int, unitPrice decimal.Decimal) error {
	if strings.TrimSpace(menuItemID) == "" {
		return fmt.Errorf("%w: menu item id is required", apperrors.ErrValidation)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive integer, got %d", apperrors.ErrValidation, quantity)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price must not be negative, got %s", apperrors.ErrValidation, unitPrice.String())
	}
	if !unitPrice.Equal(unitPrice.Round(2)) {
		return fmt.Errorf("%w: unit price must have at most 2 decimal places, got %s", apperrors.ErrValidation, unitPrice.String())
	}
	return nil
}

// NormalizeReason trims the reason and enforces the minimum length.
func NormalizeReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if len([]rune(trimmed)) < MinReasonLength {
		return "", fmt.Errorf("%w: reason must be at least %d characters", apperrors.ErrValidation, MinReasonLength)
	}
	return trimmed, nil
}

// PlanItemTransition validates a requested transition for an actor and returns
// the decline reason to persist (nil unless the target requires one).
// Authorization is checked first so unauthorized callers learn nothing about
// the item's state.
func PlanItemTransition(item OrderItem, actor Actor, target OrderItemStatus, reason string) (*string, error) {
	capability, ok := RequiredCapability(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a valid target status", apperrors.ErrValidation, target)
	}
	if !actor.Can(capability) {
		return nil, apperrors.ErrForbidden
	}

	var declineReason *string
	if target.RequiresReason() {
		normalized, err := NormalizeReason(reason)
		if err != nil {
			return nil, err
		}
		declineReason = &normalized
	}

	if !CanTransition(item.Status, target) {
		return nil, apperrors.NewTransitionError("order item", string(item.Status), string(target))
	}
	return declineReason, nil
}
