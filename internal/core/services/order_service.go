package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

// orderService implements order intake and the KOT item lifecycle.
type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryWithTx
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryWithTx, options ...ServiceOption) portssvc.OrderSvcFacade {
	svc := &orderService{orderRepo: orderRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

func (s *orderService) buildItems(hotelID, orderID string, reqs []dto.OrderItemRequest, actor domain.Actor, now time.Time) ([]domain.OrderItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	items := make([]domain.OrderItem, 0, len(reqs))
	for i, req := range reqs {
		if err := domain.ValidateNewItem(req.MenuItemID, req.Quantity, req.UnitPrice); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item %d: name is required", apperrors.ErrValidation, i)
		}
		items = append(items, domain.OrderItem{
			ItemID:      uuid.NewString(),
			OrderID:     orderID,
			HotelID:     hotelID,
			MenuItemID:  strings.TrimSpace(req.MenuItemID),
			Name:        name,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Status:      domain.ItemPending,
			AuditFields: domain.NewAuditFields(actor.UserID, now),
		})
	}
	return items, nil
}

// CreateOrder opens an order for a table with its first items.
func (s *orderService) CreateOrder(ctx context.Context, actor domain.Actor, hotelID string, req dto.CreateOrderRequest) (*domain.Order, error) {
	if !actor.Can(domain.CapPlaceOrder) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Actor cannot place orders")
		return nil, apperrors.ErrForbidden
	}
	table := strings.TrimSpace(req.TableNumber)
	if table == "" {
		return nil, fmt.Errorf("%w: table number is required", apperrors.ErrValidation)
	}

	now := s.Now()
	order := domain.Order{
		OrderID:     uuid.NewString(),
		HotelID:     hotelID,
		TableNumber: table,
		Status:      domain.OrderOpen,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}
	items, err := s.buildItems(hotelID, order.OrderID, req.Items, actor, now)
	if err != nil {
		s.LogWarn(ctx, err, "Rejected order items", slog.String("table", table))
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	if err := s.orderRepo.SaveOrder(ctx, tx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", order.OrderID))
		return nil, err
	}
	if err := s.orderRepo.SaveOrderItems(ctx, tx, items); err != nil {
		s.LogError(ctx, err, "Failed to save order items", slog.String("order_id", order.OrderID))
		return nil, err
	}
	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	order.Items = items
	s.LogInfo(ctx, "Order created", slog.String("order_id", order.OrderID), slog.Int("items", len(items)))
	s.Publish(ctx, domain.Event{
		Name:     domain.EventOrderCreated,
		HotelID:  hotelID,
		EntityID: order.OrderID,
		ActorID:  actor.UserID,
		Payload:  dto.ToOrderResponse(&order),
	})
	return &order, nil
}

// AddItems appends pending items to an open order.
func (s *orderService) AddItems(ctx context.Context, actor domain.Actor, hotelID, orderID string, req dto.AddOrderItemsRequest) ([]domain.OrderItem, error) {
	if !actor.Can(domain.CapPlaceOrder) {
		return nil, apperrors.ErrForbidden
	}
	items, err := s.buildItems(hotelID, orderID, req.Items, actor, s.Now())
	if err != nil {
		s.LogWarn(ctx, err, "Rejected order items", slog.String("order_id", orderID))
		return nil, err
	}

	tx, err := s.orderRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.orderRepo.Rollback(ctx, tx)

	order, err := s.orderRepo.LockOrder(ctx, tx, hotelID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderOpen {
		return nil, fmt.Errorf("%w: order %s is closed", apperrors.ErrConflict, orderID)
	}
	if err := s.orderRepo.SaveOrderItems(ctx, tx, items); err != nil {
		s.LogError(ctx, err, "Failed to save order items", slog.String("order_id", orderID))
		return nil, err
	}
	if err := s.orderRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Items added to order", slog.String("order_id", orderID), slog.Int("items", len(items)))
	events := make([]domain.Event, 0, len(items))
	for i := range items {
		events = append(events, s.kotEvent(actor, &items[i]))
	}
	s.Publish(ctx, events...)
	return items, nil
}

// GetOrder retrieves an order with its items.
func (s *orderService) GetOrder(ctx context.Context, hotelID, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, hotelID, orderID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get order", slog.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (s *orderService) Approve(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error) {
	return s.TransitionItem(ctx, actor, hotelID, itemID, domain.ItemApproved, "")
}

func (s *orderService) MarkReady(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error) {
	return s.TransitionItem(ctx, actor, hotelID, itemID, domain.ItemReady, "")
}

func (s *orderService) Decline(ctx context.Context, actor domain.Actor, hotelID, itemID, reason string) (*domain.OrderItem, error) {
	return s.TransitionItem(ctx, actor, hotelID, itemID, domain.ItemDeclined, reason)
}

func (s *orderService) Cancel(ctx context.Context, actor domain.Actor, hotelID, itemID, reason string) (*domain.OrderItem, error) {
	return s.TransitionItem(ctx, actor, hotelID, itemID, domain.ItemCancelled, reason)
}

func (s *orderService) Complete(ctx context.Context, actor domain.Actor, hotelID, itemID string) (*domain.OrderItem, error) {
	return s.TransitionItem(ctx, actor, hotelID, itemID, domain.ItemCompleted, "")
}

// TransitionItem moves a KOT item with a compare-and-swap on its status.
// A lost race whose outcome still allows the move is retried once.
func (s *orderService) TransitionItem(ctx context.Context, actor domain.Actor, hotelID, itemID string, target domain.OrderItemStatus, reason string) (*domain.OrderItem, error) {
	capability, ok := domain.RequiredCapability(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a valid target status", apperrors.ErrValidation, target)
	}
	if !actor.Can(capability) {
		s.LogWarn(ctx, apperrors.ErrForbidden, "Actor lacks capability for KOT transition",
			slog.String("item_id", itemID), slog.String("target", string(target)))
		return nil, apperrors.ErrForbidden
	}

	var updated *domain.OrderItem
	err := s.RetryOnConflict(ctx, "kot transition", func() error {
		item, err := s.orderRepo.FindOrderItemByID(ctx, hotelID, itemID)
		if err != nil {
			return err
		}
		declineReason, err := domain.PlanItemTransition(*item, actor, target, reason)
		if err != nil {
			return err
		}

		result, err := s.orderRepo.CompareAndSetItemStatus(ctx, hotelID, itemID, item.Status, target, declineReason, actor.UserID, s.Now())
		if err != nil {
			return err
		}
		if result != nil {
			updated = result
			return nil
		}

		current, err := s.orderRepo.FindOrderItemByID(ctx, hotelID, itemID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(current.Status, target) {
			return apperrors.NewTransitionError("order item", string(current.Status), string(target))
		}
		return fmt.Errorf("%w: order item %s changed from %s", apperrors.ErrConcurrencyConflict, itemID, item.Status)
	})
	if err != nil {
		s.LogFailure(ctx, err, "KOT transition failed",
			slog.String("item_id", itemID), slog.String("target", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "KOT item updated",
		slog.String("item_id", itemID), slog.String("status", string(updated.Status)))
	s.Publish(ctx, s.kotEvent(actor, updated))
	return updated, nil
}

func (s *orderService) kotEvent(actor domain.Actor, item *domain.OrderItem) domain.Event {
	return domain.Event{
		Name:     domain.EventKOTUpdated,
		HotelID:  item.HotelID,
		EntityID: item.ItemID,
		ActorID:  actor.UserID,
		Payload:  dto.ToOrderItemResponse(item),
	}
}
