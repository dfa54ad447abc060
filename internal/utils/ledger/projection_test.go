package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	"github.com/dokani-app/dokani_backend/internal/utils/ledger"
)

func TestProject_SumsAndResiduals(t *testing.T) {
	b := ledger.Project(decimal.NewFromInt(500), decimal.Zero, []ledger.Line{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromInt(200)},
	})

	assert.True(t, b.AmountPaid.Equal(decimal.NewFromInt(300)))
	assert.True(t, b.RemainingAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.OverpaidAmount.IsZero())
}

func TestProject_Overpaid(t *testing.T) {
	b := ledger.Project(decimal.NewFromInt(500), decimal.Zero, []ledger.Line{
		{Amount: decimal.NewFromInt(600)},
	})

	assert.True(t, b.RemainingAmount.IsZero())
	assert.True(t, b.OverpaidAmount.Equal(decimal.NewFromInt(100)))
}

func TestProject_NegativeEntriesNetOut(t *testing.T) {
	// A refund entry reduces the paid total.
	b := ledger.Project(decimal.NewFromInt(1080), decimal.Zero, []ledger.Line{
		{Amount: decimal.NewFromInt(1200)},
		{Amount: decimal.NewFromInt(-120)},
	})

	assert.True(t, b.AmountPaid.Equal(decimal.NewFromInt(1080)))
	assert.True(t, b.RemainingAmount.IsZero())
	assert.True(t, b.OverpaidAmount.IsZero())
}

func TestProject_EmptyHistory(t *testing.T) {
	b := ledger.Project(decimal.NewFromInt(500), decimal.NewFromInt(50), nil)

	assert.True(t, b.AmountPaid.IsZero())
	assert.True(t, b.RemainingAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.TransportRemaining.Equal(decimal.NewFromInt(50)))
}

func TestProject_TransportPairIndependent(t *testing.T) {
	b := ledger.Project(decimal.NewFromInt(1000), decimal.NewFromInt(200), []ledger.Line{
		{Amount: decimal.NewFromInt(1000), TransportAmount: decimal.NewFromInt(50)},
	})

	assert.True(t, b.RemainingAmount.IsZero())
	assert.True(t, b.TransportPaid.Equal(decimal.NewFromInt(50)))
	assert.True(t, b.TransportRemaining.Equal(decimal.NewFromInt(150)))
	assert.True(t, b.TransportOverpaid.IsZero())
}

func TestProject_Idempotent(t *testing.T) {
	lines := []ledger.Line{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromInt(-30)},
		{Amount: decimal.NewFromInt(70)},
	}

	first := ledger.Project(decimal.NewFromInt(200), decimal.Zero, lines)
	second := ledger.Project(decimal.NewFromInt(200), decimal.Zero, lines)

	assert.Equal(t, first, second)
}

func TestSaleStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		paid     int64
		expected domain.SaleStatus
	}{
		{"nothing paid", 500, 0, domain.SalePending},
		{"partially paid", 500, 200, domain.SalePartial},
		{"fully paid", 500, 500, domain.SalePaid},
		{"zero total", 0, 0, domain.SalePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ledger.Project(decimal.NewFromInt(tt.base), decimal.Zero, []ledger.Line{{Amount: decimal.NewFromInt(tt.paid)}})
			assert.Equal(t, tt.expected, ledger.SaleStatusFor(b))
		})
	}
}

func TestPurchaseStatusFor(t *testing.T) {
	tests := []struct {
		name          string
		base, trans   int64
		paid, transPd int64
		expected      domain.PurchaseStatus
	}{
		{"nothing paid", 1000, 200, 0, 0, domain.PurchasePending},
		{"product cleared transport owed", 1000, 200, 1000, 0, domain.PurchasePending},
		{"transport cleared product owed", 1000, 200, 500, 200, domain.PurchasePending},
		{"both cleared", 1000, 200, 1000, 200, domain.PurchaseComplete},
		{"product overpaid", 1000, 200, 1100, 200, domain.PurchaseOverpaid},
		{"transport overpaid", 1000, 200, 500, 300, domain.PurchaseOverpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ledger.Project(decimal.NewFromInt(tt.base), decimal.NewFromInt(tt.trans), []ledger.Line{
				{Amount: decimal.NewFromInt(tt.paid), TransportAmount: decimal.NewFromInt(tt.transPd)},
			})
			assert.Equal(t, tt.expected, ledger.PurchaseStatusFor(b))
		})
	}
}

func TestSaleLines_ProjectsFromPaymentHistory(t *testing.T) {
	payments := []domain.SalePayment{
		{PaymentID: "p1", Amount: decimal.NewFromInt(300)},
		{PaymentID: "p2", Amount: decimal.NewFromInt(200)},
		{PaymentID: "p3", Amount: decimal.NewFromInt(-120)},
	}

	b := ledger.Project(decimal.NewFromInt(500), decimal.Zero, ledger.SaleLines(payments))

	assert.True(t, b.AmountPaid.Equal(decimal.NewFromInt(380)))
	assert.True(t, b.RemainingAmount.Equal(decimal.NewFromInt(120)))
	assert.True(t, b.OverpaidAmount.IsZero())
}

func TestPurchaseLines_CarriesBothAmounts(t *testing.T) {
	payments := []domain.PurchasePayment{
		{PaymentID: "p1", Amount: decimal.NewFromInt(600), TransportAmount: decimal.NewFromInt(100)},
		{PaymentID: "p2", Amount: decimal.NewFromInt(400), TransportAmount: decimal.NewFromInt(100)},
	}

	b := ledger.Project(decimal.NewFromInt(1000), decimal.NewFromInt(200), ledger.PurchaseLines(payments))

	assert.True(t, b.RemainingAmount.IsZero())
	assert.True(t, b.TransportRemaining.IsZero())
	assert.Equal(t, domain.PurchaseComplete, ledger.PurchaseStatusFor(b))
}
