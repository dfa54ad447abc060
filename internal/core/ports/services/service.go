package services

// ServiceContainer holds instances of all application services. It is the
// entry point for handlers.
type ServiceContainer struct {
	Sale      SaleSvcFacade
	Purchase  PurchaseSvcFacade
	Product   ProductSvcFacade
	Category  CategorySvcFacade
	Customer  CustomerSvcFacade
	Supplier  SupplierSvcFacade
	Expense   ExpenseSvcFacade
	Reporting ReportingSvcFacade
	User      UserSvcFacade
}
