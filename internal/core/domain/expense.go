package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a standalone outgoing amount, aggregated by reporting.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate time.Time       `json:"expenseDate"`
	AuditFields
}
