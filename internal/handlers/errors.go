package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/SscSPs/hotel_ops_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TransitionErrorResponse reports a rejected state change.
type TransitionErrorResponse struct {
	Error     string `json:"error"`
	Current   string `json:"current"`
	Requested string `json:"requested"`
}

// LimitErrorResponse reports which ceiling was hit.
type LimitErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Limit   string `json:"limit"`
	Current string `json:"current"`
	Amount  string `json:"amount"`
}

// respondWithError maps a service error to its HTTP response. fallback is the
// message shown for unexpected failures.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var transitionErr *apperrors.TransitionError
	var limitErr *apperrors.LimitError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request not permitted", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not permitted"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized request", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
	case errors.As(err, &transitionErr):
		logger.Warn("Invalid state transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, TransitionErrorResponse{
			Error:     apperrors.ErrInvalidTransition.Error(),
			Current:   transitionErr.Current,
			Requested: transitionErr.Requested,
		})
	case errors.As(err, &limitErr):
		logger.Warn("Role limit exceeded", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, LimitErrorResponse{
			Error:   limitErr.Unwrap().Error(),
			Kind:    string(limitErr.Kind),
			Limit:   limitErr.Limit.StringFixed(2),
			Current: limitErr.Current.StringFixed(2),
			Amount:  limitErr.Amount.StringFixed(2),
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrVoucherExpired),
		errors.Is(err, apperrors.ErrVoucherExhausted),
		errors.Is(err, apperrors.ErrVoucherInactive):
		logger.Warn("Voucher rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConcurrencyConflict),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// bindError answers a request whose body or query failed to bind.
func bindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}
