package pricing

import "github.com/shopspring/decimal"

// ApportionProfit computes the profit earned on qty units of a product whose
// profit may be quoted per unit, per box, or both.
//
// The quantity is split into whole boxes of unitsPerBox plus loose units. The
// box rate applies to whole boxes and the unit rate to the remainder. When
// only one rate is supplied it covers everything: a lone unit rate applies to
// every unit, a lone box rate applies to whole boxes with the remainder priced
// at the pro-rated box rate (profitPerBox / unitsPerBox).
func ApportionProfit(qty, unitsPerBox int64, profitPerUnit, profitPerBox decimal.Decimal) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	qtyDec := decimal.NewFromInt(qty)

	if profitPerBox.IsZero() || unitsPerBox <= 0 {
		return profitPerUnit.Mul(qtyDec)
	}

	boxes := qty / unitsPerBox
	loose := qty % unitsPerBox

	profit := profitPerBox.Mul(decimal.NewFromInt(boxes))
	if loose > 0 {
		unitRate := profitPerUnit
		if unitRate.IsZero() {
			unitRate = profitPerBox.Div(decimal.NewFromInt(unitsPerBox))
		}
		profit = profit.Add(unitRate.Mul(decimal.NewFromInt(loose)))
	}
	return profit
}
