package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dokani-app/dokani_backend/internal/utils/pricing"
)

func TestApportionProfit(t *testing.T) {
	tests := []struct {
		name          string
		qty           int64
		unitsPerBox   int64
		profitPerUnit int64
		profitPerBox  int64
		expected      int64
	}{
		{"unit rate only", 23, 10, 5, 0, 115},
		{"box rate only falls back to per-box fraction", 23, 10, 0, 40, 92},
		{"both rates", 23, 10, 5, 40, 95},
		{"exact boxes", 20, 10, 5, 40, 80},
		{"fewer than one box", 7, 10, 5, 40, 35},
		{"no box size uses unit rate", 23, 0, 5, 40, 115},
		{"no rates at all", 23, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.ApportionProfit(tt.qty, tt.unitsPerBox, decimal.NewFromInt(tt.profitPerUnit), decimal.NewFromInt(tt.profitPerBox))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "got %s, want %d", got, tt.expected)
		})
	}
}
