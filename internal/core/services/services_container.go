package services

import (
	"time"

	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_ops_app/internal/core/ports/services"
	"github.com/SscSPs/hotel_ops_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.EventPublisher) *portssvc.ServiceContainer {
	options := []ServiceOption{WithEventPublisher(events)}

	loc := cfg.SiteLocation
	if loc == nil {
		loc = time.UTC
	}

	container := &portssvc.ServiceContainer{}
	container.RoleLimit = NewRoleLimitService(repos.RoleLimitRepo, options...)
	container.Tax = NewTaxService(repos.TaxRepo, options...)
	container.Voucher = NewVoucherService(repos.VoucherRepo, options...)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.RoleLimit, loc, options...)
	container.Order = NewOrderService(repos.OrderRepo, options...)
	container.Billing = NewBillingService(repos.OrderRepo, repos.TaxRepo, repos.BillRepo, container.Voucher, container.Transaction, options...)
	container.Auth = NewAuthService(repos.UserRepo, TokenSettings{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiryDuration,
		Issuer: cfg.JWTIssuer,
	}, options...)

	return container
}
