package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SaleRepo:      newPgxSaleRepository(pool),
		PurchaseRepo:  newPgxPurchaseRepository(pool),
		ProductRepo:   newPgxProductRepository(pool),
		CategoryRepo:  newPgxCategoryRepository(pool),
		CustomerRepo:  newPgxCustomerRepository(pool),
		SupplierRepo:  newPgxSupplierRepository(pool),
		ExpenseRepo:   newPgxExpenseRepository(pool),
		ReportingRepo: newPgxReportingRepository(pool),
		UserRepo:      newPgxUserRepository(pool),
	}
}
