package dto

import (
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest creates a supplier purchase ("ograi"). An initial
// combined ledger entry is recorded when either paid amount is nonzero.
type CreatePurchaseRequest struct {
	SupplierName  string          `json:"supplierName" binding:"required"`
	ProductName   string          `json:"productName" binding:"required"`
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unitPrice" binding:"required"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	TransportFee  decimal.Decimal `json:"transportFee"`
	TransportPaid decimal.Decimal `json:"transportPaid"`
	PaymentMethod string          `json:"paymentMethod" binding:"omitempty,paymentmethod"`
	PurchaseDate  *time.Time      `json:"purchaseDate,omitempty"`
	Notes         string          `json:"notes"`
}

// RecordPurchasePaymentRequest appends one combined product/transport entry.
// At least one of the two amounts must be positive.
type RecordPurchasePaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	TransportAmount decimal.Decimal `json:"transportAmount"`
	Method          string          `json:"method" binding:"omitempty,paymentmethod"`
	Notes           string          `json:"notes"`
}

// ListPurchasesRequest filters the purchase listing. Status accepts "pending"
// or "cleared".
type ListPurchasesRequest struct {
	SupplierID string `form:"supplierID"`
	Status     string `form:"status" binding:"omitempty,oneof=pending cleared"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// PurchasePaymentResponse is one ledger entry of a purchase.
type PurchasePaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	Amount          decimal.Decimal `json:"amount"`
	TransportAmount decimal.Decimal `json:"transportAmount"`
	Method          string          `json:"method"`
	Notes           string          `json:"notes"`
	PaidAt          time.Time       `json:"paidAt"`
}

// PurchaseResponse is the full representation of a purchase.
type PurchaseResponse struct {
	PurchaseID         string          `json:"purchaseID"`
	SupplierID         string          `json:"supplierID"`
	ProductName        string          `json:"productName"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	BaseAmount         decimal.Decimal `json:"baseAmount"`
	TransportFee       decimal.Decimal `json:"transportFee"`
	PurchaseDate       time.Time       `json:"purchaseDate"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	OverpaidAmount     decimal.Decimal `json:"overpaidAmount"`
	TransportPaid      decimal.Decimal `json:"transportPaid"`
	TransportRemaining decimal.Decimal `json:"transportRemaining"`
	TransportOverpaid  decimal.Decimal `json:"transportOverpaid"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes"`

	Payments []PurchasePaymentResponse `json:"payments,omitempty"`
}

// ToPurchasePaymentResponse converts a domain PurchasePayment.
func ToPurchasePaymentResponse(p *domain.PurchasePayment) PurchasePaymentResponse {
	return PurchasePaymentResponse{
		PaymentID:       p.PaymentID,
		Amount:          p.Amount,
		TransportAmount: p.TransportAmount,
		Method:          string(p.Method),
		Notes:           p.Notes,
		PaidAt:          p.PaidAt,
	}
}

// ToPurchaseResponse converts a domain Purchase with whatever children are loaded.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:         p.PurchaseID,
		SupplierID:         p.SupplierID,
		ProductName:        p.ProductName,
		Quantity:           p.Quantity,
		UnitPrice:          p.UnitPrice,
		BaseAmount:         p.BaseAmount,
		TransportFee:       p.TransportFee,
		PurchaseDate:       p.PurchaseDate,
		AmountPaid:         p.AmountPaid,
		RemainingAmount:    p.RemainingAmount,
		OverpaidAmount:     p.OverpaidAmount,
		TransportPaid:      p.TransportPaid,
		TransportRemaining: p.TransportRemaining,
		TransportOverpaid:  p.TransportOverpaid,
		Status:             string(p.Status),
		Notes:              p.Notes,
	}
	for i := range p.Payments {
		resp.Payments = append(resp.Payments, ToPurchasePaymentResponse(&p.Payments[i]))
	}
	return resp
}

// ToPurchaseResponses converts a slice of domain Purchases.
func ToPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses
}
