package domain

import "github.com/shopspring/decimal"

// Return records items handed back against a sale. RefundAmount includes the
// proportional profit share, not just the returned subtotal. SubtotalShare and
// ProfitShare snapshot exactly how much the sale was shrunk by, so deleting
// the return can restore the sale in full.
type Return struct {
	ReturnID      string          `json:"returnID"`
	SaleID        string          `json:"saleID"`
	PaymentID     string          `json:"paymentID"` // the negative ledger entry this return wrote
	Reason        string          `json:"reason"`
	RefundAmount  decimal.Decimal `json:"refundAmount"`
	SubtotalShare decimal.Decimal `json:"subtotalShare"`
	ProfitShare   decimal.Decimal `json:"profitShare"`
	AuditFields

	Items []ReturnItem `json:"items,omitempty"`
}

// ReturnItem is one returned product line.
type ReturnItem struct {
	ReturnItemID string          `json:"returnItemID"`
	ReturnID     string          `json:"returnID"`
	ProductID    string          `json:"productID"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}
