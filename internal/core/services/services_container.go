package services

import (
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Product = NewProductService(repos.ProductRepo, repos.CategoryRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Supplier = NewSupplierService(repos.SupplierRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo)

	// The ledger services sit on top of the reference entities.
	container.Sale = NewSaleService(repos.SaleRepo, repos.ProductRepo, repos.CustomerRepo)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.SupplierRepo)

	container.Reporting = NewReportingService(repos.ReportingRepo, cfg.LowStockThreshold)
	container.User = NewUserService(repos.UserRepo, cfg)

	return container
}
