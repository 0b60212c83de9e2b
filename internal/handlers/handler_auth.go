package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/dto"
	"github.com/SscSPs/hotel_ops_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultLoginRate = "5-M"

// authHandler handles authentication and staff accounts.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// registerAuthRoutes sets up the public login route with its own IP rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := &authHandler{authService: authService}

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		slog.Warn("Invalid LOGIN_RATE_LIMIT, using default", slog.String("value", cfg.LoginRateLimit), slog.String("default", defaultLoginRate))
		rate, _ = limiter.NewRateFromFormatted(defaultLoginRate)
	}
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
	}
}

func registerStaffRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := &authHandler{authService: authService}

	rg.POST("/staff", h.createStaffUser)
}

// login godoc
// @Summary Staff login
// @Description Authenticates a staff member and returns a JWT carrying their role and hotel.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createStaffUser godoc
// @Summary Create a staff account
// @Description Opens an account in the hotel. Owner only.
// @Tags auth
// @Accept json
// @Produce json
// @Param hotel_id path string true "Hotel ID"
// @Param staff body dto.CreateStaffUserRequest true "Account details"
// @Success 201 {object} dto.StaffUserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /hotels/{hotel_id}/staff [post]
func (h *authHandler) createStaffUser(c *gin.Context) {
	actor, hotelID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateStaffUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	user, err := h.authService.CreateStaffUser(c.Request.Context(), actor, hotelID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create staff account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStaffUserResponse(user))
}
