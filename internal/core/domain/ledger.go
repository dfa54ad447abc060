package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger guard errors. The services raise them as a fast pre-check; the
// repositories raise them again inside the transaction that holds the row
// lock, which is where they are authoritative.
var (
	ErrPaymentExceedsDue = errors.New("payment amount exceeds remaining balance")
	ErrProtectedEntry    = errors.New("initial payment entry cannot be deleted while later entries exist")
	ErrReturnExceedsSold = errors.New("returned quantity exceeds sold quantity")
)

// PaymentMethod identifies how money changed hands. Informational only;
// the projector never inspects it.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodCard   PaymentMethod = "CARD"
	MethodBank   PaymentMethod = "BANK"
	MethodMobile PaymentMethod = "MOBILE"
)

// ValidPaymentMethod reports whether m is one of the known methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodBank, MethodMobile:
		return true
	}
	return false
}

// Balances holds the derived monetary fields projected from a transaction's
// base amounts and its full payment history. Never authored directly.
type Balances struct {
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	OverpaidAmount     decimal.Decimal `json:"overpaidAmount"`
	TransportPaid      decimal.Decimal `json:"transportPaid"`
	TransportRemaining decimal.Decimal `json:"transportRemaining"`
	TransportOverpaid  decimal.Decimal `json:"transportOverpaid"`
}

// SalePayment is one ledger entry against a sale. Amount is signed: positive
// for a payment, negative for a refund written by a return.
type SalePayment struct {
	PaymentID string          `json:"paymentID"`
	SaleID    string          `json:"saleID"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	Notes     string          `json:"notes"`
	PaidAt    time.Time       `json:"paidAt"`
	AuditFields
}

// PurchasePayment is one ledger entry against a purchase. It carries two
// independent amounts: one against the product balance and one against the
// transport fee balance.
type PurchasePayment struct {
	PaymentID       string          `json:"paymentID"`
	PurchaseID      string          `json:"purchaseID"`
	Amount          decimal.Decimal `json:"amount"`
	TransportAmount decimal.Decimal `json:"transportAmount"`
	Method          PaymentMethod   `json:"method"`
	Notes           string          `json:"notes"`
	PaidAt          time.Time       `json:"paidAt"`
	AuditFields
}
