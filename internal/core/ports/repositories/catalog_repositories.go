package repositories

import (
	"context"
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
)

// ProductRepository defines persistence operations for products. Stock
// adjustments driven by sales and returns live on the sale repository so they
// share the ledger's transaction boundary.
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, nameSearch, categoryID string, limit, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	// FindCustomerByNameAndPhone performs the exact match used by sale
	// creation's find-or-create flow. Returns apperrors.ErrNotFound on miss.
	FindCustomerByNameAndPhone(ctx context.Context, name, phone string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierRepository defines persistence operations for suppliers.
type SupplierRepository interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	// FindSupplierByName performs the exact match used by purchase creation's
	// find-or-create flow. Returns apperrors.ErrNotFound on miss.
	FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, search string, limit, offset int) ([]domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// ExpenseRepository defines persistence operations for expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, params ListExpensesParams) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ListExpensesParams narrows an expense listing.
type ListExpensesParams struct {
	Category string
	From     *time.Time // inclusive
	To       *time.Time // exclusive
	Limit    int
	Offset   int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
