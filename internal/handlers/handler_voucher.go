package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles voucher issuing, checks and redemption.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := &voucherHandler{voucherService: voucherService}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.POST("/validate", h.validateVoucher)
		vouchers.POST("/redeem", h.redeemVoucher)
	}
}

// createVoucher godoc
// @Summary Issue a voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already in use"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), actor, hotelID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create voucher")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Tags vouchers
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Success 200 {array} dto.VoucherResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), actor, hotelID)
	if err != nil {
		respondWithError(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponses(vouchers))
}

// validateVoucher godoc
// @Summary Check a voucher code
// @Description Reports whether the code can be used now. Never consumes a use.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param voucher body dto.ValidateVoucherRequest true "Voucher code"
// @Success 200 {object} dto.ValidateVoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/vouchers/validate [post]
func (h *voucherHandler) validateVoucher(c *gin.Context) {
	_, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	voucher, err := h.voucherService.ValidateVoucher(c.Request.Context(), hotelID, req.Code)
	switch {
	case err == nil:
		resp := dto.ToVoucherResponse(voucher)
		c.JSON(http.StatusOK, dto.ValidateVoucherResponse{Valid: true, Voucher: &resp})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusOK, dto.ValidateVoucherResponse{Valid: false, Message: "voucher not found"})
	case errors.Is(err, apperrors.ErrVoucherExpired),
		errors.Is(err, apperrors.ErrVoucherExhausted),
		errors.Is(err, apperrors.ErrVoucherInactive):
		c.JSON(http.StatusOK, dto.ValidateVoucherResponse{Valid: false, Message: err.Error()})
	default:
		respondWithError(c, err, "Failed to validate voucher")
	}
}

// redeemVoucher godoc
// @Summary Redeem a voucher
// @Description Uses the voucher once for the reference. Repeating a reference does not count twice. The Idempotency-Key header is used when no reference is given.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param Idempotency-Key header string false "Redemption reference"
// @Param redemption body dto.RedeemVoucherRequest true "Redemption details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Voucher expired, exhausted or inactive"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/vouchers/redeem [post]
func (h *voucherHandler) redeemVoucher(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.RedeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	reference := req.Reference
	if reference == "" {
		reference = c.GetHeader("Idempotency-Key")
	}

	voucher, err := h.voucherService.RedeemVoucher(c.Request.Context(), actor, hotelID, req.VoucherID, reference)
	if err != nil {
		respondWithError(c, err, "Failed to redeem voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}
