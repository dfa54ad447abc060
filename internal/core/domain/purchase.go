package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus indicates how much of a supplier purchase has been settled.
// COMPLETE requires both the product balance and the transport balance to be
// cleared.
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "PENDING"
	PurchaseComplete PurchaseStatus = "COMPLETE"
	PurchaseOverpaid PurchaseStatus = "OVERPAID"
)

// Purchase is a supplier purchase ("ograi"). It carries two independently
// tracked balances: the product amount (quantity * unit price) and the
// transport fee.
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	SupplierID   string          `json:"supplierID"`
	ProductName  string          `json:"productName"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	BaseAmount   decimal.Decimal `json:"baseAmount"` // quantity * unit price
	TransportFee decimal.Decimal `json:"transportFee"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	Status       PurchaseStatus  `json:"status"`
	Notes        string          `json:"notes"`
	Balances
	AuditFields

	// Loaded separately by the service layer.
	Payments []PurchasePayment `json:"payments,omitempty"`
}
