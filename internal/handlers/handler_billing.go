package handlers

import (
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// billingHandler handles bill preview and settlement.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func registerBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := &billingHandler{billingService: billingService}

	rg.GET("/orders/:order_id/bill", h.previewBill)
	rg.POST("/orders/:order_id/bill", h.finalizeBill)
}

// previewBill godoc
// @Summary Preview an order's bill
// @Description Computes subtotal, cascading taxes, discount and grand total without side effects
// @Tags billing
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param order_id path string true "Order ID"
// @Param policy query string false "Billing policy" Enums(table_check, guest_invoice)
// @Param voucherCode query string false "Voucher code to apply"
// @Success 200 {object} dto.BillTotalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Voucher expired, exhausted or inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/orders/{order_id}/bill [get]
func (h *billingHandler) previewBill(c *gin.Context) {
	_, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.PreviewBillParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	totals, err := h.billingService.PreviewBill(c.Request.Context(), hotelID, c.Param("order_id"), domain.BillingPolicy(params.Policy), params.VoucherCode)
	if err != nil {
		respondWithError(c, err, "Failed to calculate bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillTotalsResponse(totals))
}

// finalizeBill godoc
// @Summary Finalize an order's bill
// @Description Bills eligible items, redeems the voucher, records the payment and closes the order in one transaction. Repeating a billId returns the stored bill.
// @Tags billing
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param order_id path string true "Order ID"
// @Param bill body dto.FinalizeBillRequest true "Settlement details"
// @Success 201 {object} dto.BillResponse
// @Success 200 {object} dto.BillResponse "Replayed bill"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} LimitErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/orders/{order_id}/bill [post]
func (h *billingHandler) finalizeBill(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.FinalizeBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	if req.BillID == "" {
		req.BillID = c.GetHeader("Idempotency-Key")
	}

	bill, created, err := h.billingService.FinalizeBill(c.Request.Context(), actor, hotelID, c.Param("order_id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to finalize bill")
		return
	}
	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToBillResponse(bill))
}
