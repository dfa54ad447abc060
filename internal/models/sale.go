package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus mirrors domain.SaleStatus at the storage layer.
type SaleStatus string

const (
	SalePending SaleStatus = "PENDING"
	SalePartial SaleStatus = "PARTIAL"
	SalePaid    SaleStatus = "PAID"
)

// Sale mirrors one row of the sales table.
type Sale struct {
	SaleID          string          `json:"saleID"`
	CustomerID      string          `json:"customerID"`
	SaleDate        time.Time       `json:"saleDate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Profit          decimal.Decimal `json:"profit"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	OverpaidAmount  decimal.Decimal `json:"overpaidAmount"`
	Status          SaleStatus      `json:"status"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Notes           string          `json:"notes"`
	AuditFields
}

// SaleItem mirrors one row of the sale_items table. ProductName is joined in
// from products on read.
type SaleItem struct {
	SaleItemID  string          `json:"saleItemID"`
	SaleID      string          `json:"saleID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalePayment mirrors one row of the sale_payments table. Amount is signed.
type SalePayment struct {
	PaymentID string          `json:"paymentID"`
	SaleID    string          `json:"saleID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Notes     string          `json:"notes"`
	PaidAt    time.Time       `json:"paidAt"`
	AuditFields
}

// Return mirrors one row of the returns table.
type Return struct {
	ReturnID      string          `json:"returnID"`
	SaleID        string          `json:"saleID"`
	PaymentID     string          `json:"paymentID"`
	Reason        string          `json:"reason"`
	RefundAmount  decimal.Decimal `json:"refundAmount"`
	SubtotalShare decimal.Decimal `json:"subtotalShare"`
	ProfitShare   decimal.Decimal `json:"profitShare"`
	AuditFields
}

// ReturnItem mirrors one row of the return_items table.
type ReturnItem struct {
	ReturnItemID string          `json:"returnItemID"`
	ReturnID     string          `json:"returnID"`
	ProductID    string          `json:"productID"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}
