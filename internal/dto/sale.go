package dto

import (
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one product line of a sale creation request. The unit
// price is taken from the product record, not from the caller.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest creates a sale, optionally with an initial payment that
// becomes the first ledger entry.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	CustomerName  string            `json:"customerName" binding:"required"`
	CustomerPhone string            `json:"customerPhone"`
	PaymentMethod string            `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	AmountPaid    decimal.Decimal   `json:"amountPaid"`
	Discount      decimal.Decimal   `json:"discount"`
	DueDate       *time.Time        `json:"dueDate,omitempty"`
	Notes         string            `json:"notes"`
}

// RecordSalePaymentRequest appends one payment entry to a sale's ledger.
type RecordSalePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"omitempty,paymentmethod"`
	Notes  string          `json:"notes"`
}

// ReturnItemRequest is one returned product line.
type ReturnItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnRequest records a return against a sale. A reason is mandatory.
type CreateReturnRequest struct {
	Items  []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason string              `json:"reason" binding:"required"`
}

// ListSalesRequest filters the sale listing.
type ListSalesRequest struct {
	SaleID        string `form:"saleID"`
	CustomerName  string `form:"customerName"`
	CustomerPhone string `form:"customerPhone"`
	Status        string `form:"status"`
	Limit         int    `form:"limit"`
	Offset        int    `form:"offset"`
}

// SalePaymentResponse is one ledger entry of a sale.
type SalePaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Notes     string          `json:"notes"`
	PaidAt    time.Time       `json:"paidAt"`
}

// SaleItemResponse is one item line of a sale.
type SaleItemResponse struct {
	SaleItemID  string          `json:"saleItemID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ReturnResponse is one return record of a sale.
type ReturnResponse struct {
	ReturnID     string               `json:"returnID"`
	SaleID       string               `json:"saleID"`
	Reason       string               `json:"reason"`
	RefundAmount decimal.Decimal      `json:"refundAmount"`
	CreatedAt    time.Time            `json:"createdAt"`
	Items        []ReturnItemResponse `json:"items,omitempty"`
}

// ReturnItemResponse is one line of a return.
type ReturnItemResponse struct {
	ProductID string          `json:"productID"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SaleResponse is the full representation of a sale.
type SaleResponse struct {
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
	Status          string          `json:"status"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Notes           string          `json:"notes"`

	Items    []SaleItemResponse    `json:"items,omitempty"`
	Payments []SalePaymentResponse `json:"payments,omitempty"`
	Returns  []ReturnResponse      `json:"returns,omitempty"`
}

// ToSalePaymentResponse converts a domain SalePayment.
func ToSalePaymentResponse(p *domain.SalePayment) SalePaymentResponse {
	return SalePaymentResponse{
		PaymentID: p.PaymentID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Notes:     p.Notes,
		PaidAt:    p.PaidAt,
	}
}

// ToReturnResponse converts a domain Return.
func ToReturnResponse(r *domain.Return) ReturnResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ReturnItemResponse{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return ReturnResponse{
		ReturnID:     r.ReturnID,
		SaleID:       r.SaleID,
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
		CreatedAt:    r.CreatedAt,
		Items:        items,
	}
}

// ToSaleResponse converts a domain Sale with whatever children are loaded.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:          s.SaleID,
		CustomerID:      s.CustomerID,
		SaleDate:        s.SaleDate,
		Subtotal:        s.Subtotal,
		Discount:        s.Discount,
		Profit:          s.Profit,
		TotalAmount:     s.TotalAmount,
		AmountPaid:      s.AmountPaid,
		RemainingAmount: s.RemainingAmount,
		OverpaidAmount:  s.OverpaidAmount,
		Status:          string(s.Status),
		DueDate:         s.DueDate,
		Notes:           s.Notes,
	}
	for i := range s.Items {
		it := s.Items[i]
		resp.Items = append(resp.Items, SaleItemResponse{
			SaleItemID:  it.SaleItemID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	for i := range s.Payments {
		resp.Payments = append(resp.Payments, ToSalePaymentResponse(&s.Payments[i]))
	}
	for i := range s.Returns {
		resp.Returns = append(resp.Returns, ToReturnResponse(&s.Returns[i]))
	}
	return resp
}

// ToSaleResponses converts a slice of domain Sales.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
