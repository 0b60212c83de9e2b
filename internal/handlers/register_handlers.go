package handlers

import (
	"log/slog"

	"github.com/SscSPs/hotel_ops_app/cmd/docs"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/middleware"
	"github.com/SscSPs/hotel_ops_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultAPIRate = "300-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, services.Auth)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the hotel-scoped group. Every route below it
// needs a token issued for the hotel in the path.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid RATE_LIMIT, using default", slog.String("value", cfg.RateLimit), slog.String("default", defaultAPIRate))
		rate, _ = limiter.NewRateFromFormatted(defaultAPIRate)
	}

	hotel := r.Group("/api/v1/hotels/:"+hotelIDParam,
		middleware.RateLimit(limiter.New(memory.NewStore(), rate)),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.HotelScope(hotelIDParam),
	)

	registerOrderRoutes(hotel, service.Order)
	registerBillingRoutes(hotel, service.Billing)
	registerVoucherRoutes(hotel, service.Voucher)
	registerTransactionRoutes(hotel, service.Transaction)
	registerSettingsRoutes(hotel, service.RoleLimit, service.Tax)
	registerStaffRoutes(hotel, service.Auth)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
