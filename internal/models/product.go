package models

import "github.com/shopspring/decimal"

// Product mirrors one row of the products table.
type Product struct {
	ProductID     string          `json:"productID"`
	CategoryID    string          `json:"categoryID"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int64           `json:"quantity"`
	UnitsPerBox   int64           `json:"unitsPerBox"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
	ProfitPerBox  decimal.Decimal `json:"profitPerBox"`
	AuditFields
}

// Category mirrors one row of the categories table.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
