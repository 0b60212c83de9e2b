package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/SscSPs/hotel_ops_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests for orders and their KOT items.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers order and KOT item routes under a hotel group.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("/:order_id", h.getOrder)
		orders.POST("/:order_id/items", h.addItems)
	}
	rg.POST("/kot-items/:item_id", h.updateKOTItem)
}

// createOrder godoc
// @Summary Open an order
// @Description Opens an order for a table with its first KOT items. Items start pending.
// @Tags orders
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actor, hotelID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order
// @Description Retrieves an order with its KOT items in creation order
// @Tags orders
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param order_id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/orders/{order_id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	_, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), hotelID, c.Param("order_id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// addItems godoc
// @Summary Add items to an order
// @Description Appends pending KOT items to an open order
// @Tags orders
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param order_id path string true "Order ID"
// @Param items body dto.AddOrderItemsRequest true "Items to add"
// @Success 201 {array} dto.OrderItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order already closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/orders/{order_id}/items [post]
func (h *orderHandler) addItems(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.AddOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	items, err := h.orderService.AddItems(c.Request.Context(), actor, hotelID, c.Param("order_id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to add items")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderItemResponses(items))
}

// updateKOTItem godoc
// @Summary Move a KOT item to a new status
// @Description Approve, mark ready, decline, cancel or complete an item. Decline and cancel need a reason of at least 10 characters.
// @Tags kot
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param item_id path string true "Order item ID"
// @Param update body dto.UpdateKOTItemRequest true "Target status"
// @Success 200 {object} dto.OrderItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} TransitionErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/kot-items/{item_id} [post]
func (h *orderHandler) updateKOTItem(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpdateKOTItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	itemID := c.Param("item_id")
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("KOT item update requested",
		slog.String("item_id", itemID), slog.String("status", req.Status))

	item, err := h.orderService.TransitionItem(c.Request.Context(), actor, hotelID, itemID, domain.OrderItemStatus(req.Status), req.DeclineReason)
	if err != nil {
		respondWithError(c, err, "Failed to update KOT item")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}
