package domain

import "github.com/shopspring/decimal"

// Product is a stocked item. Profit rates may be set per unit, per box, or
// both; the sale service apportions them across whole boxes and loose units.
type Product struct {
	ProductID     string          `json:"productID"`
	CategoryID    string          `json:"categoryID"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int64           `json:"quantity"` // stock on hand, never negative
	UnitsPerBox   int64           `json:"unitsPerBox"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
	ProfitPerBox  decimal.Decimal `json:"profitPerBox"`
	AuditFields
}

// Category groups products.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
