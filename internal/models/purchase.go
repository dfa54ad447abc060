package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus mirrors domain.PurchaseStatus at the storage layer.
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "PENDING"
	PurchaseComplete PurchaseStatus = "COMPLETE"
	PurchaseOverpaid PurchaseStatus = "OVERPAID"
)

// Purchase mirrors one row of the purchases table.
type Purchase struct {
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
	Status             PurchaseStatus  `json:"status"`
	Notes              string          `json:"notes"`
	AuditFields
}

// PurchasePayment mirrors one row of the purchase_payments table.
type PurchasePayment struct {
	PaymentID       string          `json:"paymentID"`
	PurchaseID      string          `json:"purchaseID"`
	Amount          decimal.Decimal `json:"amount"`
	TransportAmount decimal.Decimal `json:"transportAmount"`
	Method          string          `json:"method"`
	Notes           string          `json:"notes"`
	PaidAt          time.Time       `json:"paidAt"`
	AuditFields
}
