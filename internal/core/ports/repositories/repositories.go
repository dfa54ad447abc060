package repositories

// RepositoryProvider holds instances of every repository, wired once at
// startup and handed to the service container.
type RepositoryProvider struct {
	SaleRepo      SaleRepositoryFacade
	PurchaseRepo  PurchaseRepositoryFacade
	ProductRepo   ProductRepository
	CategoryRepo  CategoryRepository
	CustomerRepo  CustomerRepository
	SupplierRepo  SupplierRepository
	ExpenseRepo   ExpenseRepository
	ReportingRepo ReportingRepository
	UserRepo      UserRepository
}
