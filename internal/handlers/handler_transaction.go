package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles the hotel ledger.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{txnService: txnService}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.recordTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/daily-total", h.dailyTotal)
		txns.GET("/:txn_id", h.getTransaction)
		txns.POST("/:txn_id/approve", h.approveTransaction)
		txns.POST("/:txn_id/reject", h.rejectTransaction)
		txns.POST("/:txn_id/void", h.voidTransaction)
	}
}

// recordTransaction godoc
// @Summary Record a transaction
// @Description Records a money movement subject to the caller's role limits. Amounts above the approval threshold are stored as pending_approval.
// @Tags transactions
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} LimitErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	txn, err := h.txnService.RecordTransaction(c.Request.Context(), actor, hotelID, req.ToNewTransaction())
	if err != nil {
		respondWithError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Retrieves a page of transactions, newest first
// @Tags transactions
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	resp, err := h.txnService.ListTransactions(c.Request.Context(), actor, hotelID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// dailyTotal godoc
// @Summary Caller's counted total for a day
// @Description Sums the caller's posted and approved amounts for the site-local day (YYYY-MM-DD, default today)
// @Tags transactions
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param day query string false "Day as YYYY-MM-DD"
// @Success 200 {object} dto.DailyTotalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions/daily-total [get]
func (h *transactionHandler) dailyTotal(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			bindError(c, err, "day")
			return
		}
		// Noon avoids shifting into a neighbouring day when converted to the site zone.
		day = parsed.Add(12 * time.Hour)
	}

	total, err := h.txnService.DailyTotal(c.Request.Context(), actor, hotelID, day)
	if err != nil {
		respondWithError(c, err, "Failed to compute daily total")
		return
	}
	c.JSON(http.StatusOK, dto.DailyTotalResponse{
		UserID: actor.UserID,
		Day:    day.Format(time.DateOnly),
		Total:  dto.Money(total),
	})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param txn_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions/{txn_id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	txn, err := h.txnService.GetTransaction(c.Request.Context(), actor, hotelID, c.Param("txn_id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// approveTransaction godoc
// @Summary Approve a pending transaction
// @Tags transactions
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param txn_id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} TransitionErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions/{txn_id}/approve [post]
func (h *transactionHandler) approveTransaction(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	txn, err := h.txnService.ApproveTransaction(c.Request.Context(), actor, hotelID, c.Param("txn_id"))
	if err != nil {
		respondWithError(c, err, "Failed to approve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// rejectTransaction godoc
// @Summary Reject a pending transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param txn_id path string true "Transaction ID"
// @Param reason body dto.ReasonRequest true "Rejection reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} TransitionErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions/{txn_id}/reject [post]
func (h *transactionHandler) rejectTransaction(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	txn, err := h.txnService.RejectTransaction(c.Request.Context(), actor, hotelID, c.Param("txn_id"), req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to reject transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// voidTransaction godoc
// @Summary Void a posted or approved transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param txn_id path string true "Transaction ID"
// @Param reason body dto.ReasonRequest true "Void reason"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} TransitionErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/transactions/{txn_id}/void [post]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}
	txn, err := h.txnService.VoidTransaction(c.Request.Context(), actor, hotelID, c.Param("txn_id"), req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to void transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
