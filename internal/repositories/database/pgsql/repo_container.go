package pgsql

import (
	portsrepo "github.com/SscSPs/hotel_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:       newPgxOrderRepository(dbPool),
		TaxRepo:         newPgxTaxSettingRepository(dbPool),
		VoucherRepo:     newPgxVoucherRepository(dbPool),
		RoleLimitRepo:   newPgxRoleLimitRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BillRepo:        newPgxBillRepository(dbPool),
		UserRepo:        newPgxStaffUserRepository(dbPool),
	}
}
