package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus indicates how much of a sale has been settled.
type SaleStatus string

const (
	SalePending SaleStatus = "PENDING" // nothing paid yet
	SalePartial SaleStatus = "PARTIAL"
	SalePaid    SaleStatus = "PAID"
)

// Sale is a customer sale. TotalAmount is the principal owed
// (subtotal + profit - discount); the Balances fields are always re-derived
// from the payment history, never written directly.
type Sale struct {
	SaleID      string          `json:"saleID"`
	CustomerID  string          `json:"customerID"`
	SaleDate    time.Time       `json:"saleDate"`
	Subtotal    decimal.Decimal `json:"subtotal"` // sum of item price * quantity
	Discount    decimal.Decimal `json:"discount"`
	Profit      decimal.Decimal `json:"profit"` // profit component net of discount
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      SaleStatus      `json:"status"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Notes       string          `json:"notes"`
	Balances
	AuditFields

	// Loaded separately by the service layer.
	Items    []SaleItem    `json:"items,omitempty"`
	Payments []SalePayment `json:"payments,omitempty"`
	Returns  []Return      `json:"returns,omitempty"`
}

// SaleItem is one product line of a sale.
type SaleItem struct {
	SaleItemID  string          `json:"saleItemID"`
	SaleID      string          `json:"saleID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
