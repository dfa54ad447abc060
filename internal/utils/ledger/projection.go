package ledger

import (
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Line is the part of a ledger entry the projector consumes: the signed
// payment amount and, for purchases, the transport portion.
type Line struct {
	Amount          decimal.Decimal
	TransportAmount decimal.Decimal
}

// SaleLines extracts projector lines from a sale's payment history.
func SaleLines(payments []domain.SalePayment) []Line {
	lines := make([]Line, len(payments))
	for i, p := range payments {
		lines[i] = Line{Amount: p.Amount}
	}
	return lines
}

// PurchaseLines extracts projector lines from a purchase's payment history.
func PurchaseLines(payments []domain.PurchasePayment) []Line {
	lines := make([]Line, len(payments))
	for i, p := range payments {
		lines[i] = Line{Amount: p.Amount, TransportAmount: p.TransportAmount}
	}
	return lines
}

// Project folds a transaction's base amounts and its full entry history into
// the derived balances. It is pure and idempotent: projecting the same history
// twice yields identical results, so callers re-derive from scratch on every
// mutation instead of nudging stored values by a delta.
func Project(baseAmount, transportBase decimal.Decimal, lines []Line) domain.Balances {
	paid := decimal.Zero
	transportPaid := decimal.Zero
	for _, l := range lines {
		paid = paid.Add(l.Amount)
		transportPaid = transportPaid.Add(l.TransportAmount)
	}

	return domain.Balances{
		AmountPaid:         paid,
		RemainingAmount:    residual(baseAmount, paid),
		OverpaidAmount:     residual(paid, baseAmount),
		TransportPaid:      transportPaid,
		TransportRemaining: residual(transportBase, transportPaid),
		TransportOverpaid:  residual(transportPaid, transportBase),
	}
}

// residual is max(0, a-b).
func residual(a, b decimal.Decimal) decimal.Decimal {
	d := a.Sub(b)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SaleStatusFor derives a sale's status from its projected balances.
// PENDING is reserved for sales with nothing paid at all.
func SaleStatusFor(b domain.Balances) domain.SaleStatus {
	if b.RemainingAmount.IsZero() {
		return domain.SalePaid
	}
	if b.AmountPaid.IsZero() {
		return domain.SalePending
	}
	return domain.SalePartial
}

// PurchaseStatusFor derives a purchase's status from its projected balances.
// Both the product and transport balances must clear for COMPLETE.
func PurchaseStatusFor(b domain.Balances) domain.PurchaseStatus {
	if b.OverpaidAmount.IsPositive() || b.TransportOverpaid.IsPositive() {
		return domain.PurchaseOverpaid
	}
	if b.RemainingAmount.IsZero() && b.TransportRemaining.IsZero() {
		return domain.PurchaseComplete
	}
	return domain.PurchasePending
}
