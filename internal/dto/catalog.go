package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	CategoryID    string          `json:"categoryID"`
	UnitPrice     decimal.Decimal `json:"unitPrice" binding:"required"`
	Quantity      int64           `json:"quantity" binding:"gte=0"`
	UnitsPerBox   int64           `json:"unitsPerBox" binding:"gte=0"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
	ProfitPerBox  decimal.Decimal `json:"profitPerBox"`
}

// UpdateProductRequest updates a product; nil fields are left untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	CategoryID    *string          `json:"categoryID,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"`
	Quantity      *int64           `json:"quantity,omitempty"`
	UnitsPerBox   *int64           `json:"unitsPerBox,omitempty"`
	ProfitPerUnit *decimal.Decimal `json:"profitPerUnit,omitempty"`
	ProfitPerBox  *decimal.Decimal `json:"profitPerBox,omitempty"`
}

// CreateCategoryRequest creates a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCustomerRequest creates a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerRequest updates a customer; nil fields are left untouched.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CreateSupplierRequest creates a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest updates a supplier; nil fields are left untouched.
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CreateExpenseRequest creates an expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ExpenseDate *time.Time      `json:"expenseDate,omitempty"`
}

// ListExpensesRequest filters the expense listing by category and date range.
type ListExpensesRequest struct {
	Category string     `form:"category"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// UpdateExpenseRequest updates an expense; nil fields are left untouched.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	ExpenseDate *time.Time       `json:"expenseDate,omitempty"`
}
