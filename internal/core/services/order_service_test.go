package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/core/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
)

func newOrderFixture(t *testing.T) (portssvc.OrderSvcFacade, *fakeOrderRepo, *recordingPublisher) {
	t.Helper()
	repo := newFakeOrderRepo()
	events := &recordingPublisher{}
	svc := services.NewOrderService(repo, services.WithEventPublisher(events), services.WithClock(fixedClock))
	return svc, repo, events
}

func placeOrder(t *testing.T, svc portssvc.OrderSvcFacade, items ...dto.OrderItemRequest) *domain.Order {
	t.Helper()
	if len(items) == 0 {
		items = []dto.OrderItemRequest{{MenuItemID: "momo", Name: "Chicken Momo", Quantity: 2, UnitPrice: dec("250")}}
	}
	order, err := svc.CreateOrder(context.Background(), actorAs(domain.RoleWaiter, "waiter-1"), testHotel,
		dto.CreateOrderRequest{TableNumber: " T4 ", Items: items})
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	svc, repo, events := newOrderFixture(t)

	order := placeOrder(t, svc,
		dto.OrderItemRequest{MenuItemID: "momo", Name: "Chicken Momo", Quantity: 2, UnitPrice: dec("250")},
		dto.OrderItemRequest{MenuItemID: "tea", Name: "Masala Tea", Quantity: 1, UnitPrice: dec("80")},
	)

	assert.Equal(t, "T4", order.TableNumber)
	assert.Equal(t, domain.OrderOpen, order.Status)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, domain.ItemPending, item.Status)
		assert.Equal(t, order.OrderID, item.OrderID)
	}
	stored, err := repo.FindOrderByID(context.Background(), testHotel, order.OrderID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, []domain.EventName{domain.EventOrderCreated}, events.names())
}

func TestCreateOrder_Rejections(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	ctx := context.Background()
	waiter := actorAs(domain.RoleWaiter, "waiter-1")

	testCases := []struct {
		name  string
		actor domain.Actor
		req   dto.CreateOrderRequest
		want  error
	}{
		{
			name:  "kitchen cannot place orders",
			actor: actorAs(domain.RoleKitchen, "chef-1"),
			req:   dto.CreateOrderRequest{TableNumber: "T1", Items: []dto.OrderItemRequest{{MenuItemID: "m", Name: "M", Quantity: 1, UnitPrice: dec("1")}}},
			want:  apperrors.ErrForbidden,
		},
		{
			name:  "zero quantity",
			actor: waiter,
			req:   dto.CreateOrderRequest{TableNumber: "T1", Items: []dto.OrderItemRequest{{MenuItemID: "m", Name: "M", Quantity: 0, UnitPrice: dec("1")}}},
			want:  apperrors.ErrValidation,
		},
		{
			name:  "negative price",
			actor: waiter,
			req:   dto.CreateOrderRequest{TableNumber: "T1", Items: []dto.OrderItemRequest{{MenuItemID: "m", Name: "M", Quantity: 1, UnitPrice: dec("-1")}}},
			want:  apperrors.ErrValidation,
		},
		{
			name:  "no items",
			actor: waiter,
			req:   dto.CreateOrderRequest{TableNumber: "T1"},
			want:  apperrors.ErrValidation,
		},
		{
			name:  "blank table",
			actor: waiter,
			req:   dto.CreateOrderRequest{TableNumber: "  ", Items: []dto.OrderItemRequest{{MenuItemID: "m", Name: "M", Quantity: 1, UnitPrice: dec("1")}}},
			want:  apperrors.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tc.actor, testHotel, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAddItems_ClosedOrder(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	order := placeOrder(t, svc)
	require.NoError(t, repo.CloseOrder(context.Background(), nil, testHotel, order.OrderID, "cashier-1", fixedNow))

	_, err := svc.AddItems(context.Background(), actorAs(domain.RoleWaiter, "waiter-1"), testHotel, order.OrderID,
		dto.AddOrderItemsRequest{Items: []dto.OrderItemRequest{{MenuItemID: "tea", Name: "Tea", Quantity: 1, UnitPrice: dec("80")}}})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAddItems_PublishesPerItem(t *testing.T) {
	svc, _, events := newOrderFixture(t)
	order := placeOrder(t, svc)

	items, err := svc.AddItems(context.Background(), actorAs(domain.RoleBar, "bar-1"), testHotel, order.OrderID,
		dto.AddOrderItemsRequest{Items: []dto.OrderItemRequest{
			{MenuItemID: "beer", Name: "Beer", Quantity: 2, UnitPrice: dec("450")},
			{MenuItemID: "soda", Name: "Soda", Quantity: 1, UnitPrice: dec("90")},
		}})

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, []domain.EventName{domain.EventOrderCreated, domain.EventKOTUpdated, domain.EventKOTUpdated}, events.names())
}

func TestKOTLifecycle(t *testing.T) {
	svc, _, events := newOrderFixture(t)
	ctx := context.Background()
	order := placeOrder(t, svc)
	itemID := order.Items[0].ItemID
	chef := actorAs(domain.RoleKitchen, "chef-1")
	waiter := actorAs(domain.RoleWaiter, "waiter-1")

	item, err := svc.Approve(ctx, chef, testHotel, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemApproved, item.Status)

	item, err = svc.MarkReady(ctx, chef, testHotel, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemReady, item.Status)

	_, err = svc.Decline(ctx, actorAs(domain.RoleManager, "m-1"), testHotel, itemID, "Out of chicken tonight")
	var transitionErr *apperrors.TransitionError
	require.True(t, errors.As(err, &transitionErr), "ready items cannot be declined")
	assert.Equal(t, "ready", transitionErr.Current)

	item, err = svc.Complete(ctx, waiter, testHotel, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemCompleted, item.Status)

	_, err = svc.Cancel(ctx, actorAs(domain.RoleManager, "m-1"), testHotel, itemID, "Guest left the table")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "completed is terminal")

	assert.Equal(t, []domain.EventName{
		domain.EventOrderCreated, domain.EventKOTUpdated, domain.EventKOTUpdated, domain.EventKOTUpdated,
	}, events.names())
}

func TestKOTTransition_AuthorizationBeforeState(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	order := placeOrder(t, svc)
	itemID := order.Items[0].ItemID

	_, err := svc.Approve(context.Background(), actorAs(domain.RoleWaiter, "waiter-1"), testHotel, itemID)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, domain.ItemPending, repo.items[itemID].Status)
}

func TestKOTTransition_DeclineNeedsReason(t *testing.T) {
	svc, repo, _ := newOrderFixture(t)
	order := placeOrder(t, svc)
	itemID := order.Items[0].ItemID
	manager := actorAs(domain.RoleManager, "m-1")

	_, err := svc.Decline(context.Background(), manager, testHotel, itemID, " no stock ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.ItemPending, repo.items[itemID].Status)

	item, err := svc.Decline(context.Background(), manager, testHotel, itemID, "  Kitchen is out of chicken ")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemDeclined, item.Status)
	require.NotNil(t, item.DeclineReason)
	assert.Equal(t, "Kitchen is out of chicken", *item.DeclineReason)
}

func TestKOTTransition_ConcurrentApprove(t *testing.T) {
	svc, _, _ := newOrderFixture(t)
	order := placeOrder(t, svc)
	itemID := order.Items[0].ItemID

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(context.Background(), actorAs(domain.RoleKitchen, "chef-1"), testHotel, itemID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	}
	assert.Equal(t, 1, succeeded)
}

func TestKOTTransition_UnknownItem(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.Approve(context.Background(), actorAs(domain.RoleKitchen, "chef-1"), testHotel, "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransitionItem_InvalidTarget(t *testing.T) {
	svc, _, _ := newOrderFixture(t)

	_, err := svc.TransitionItem(context.Background(), actorAs(domain.RoleOwner, "o-1"), testHotel, "any", domain.ItemPending, "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
