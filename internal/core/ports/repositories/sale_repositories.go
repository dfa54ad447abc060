package repositories

import (
	"context"
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
)

// ListSalesParams narrows a sale listing. All filters are optional.
type ListSalesParams struct {
	SaleID        string
	CustomerName  string
	CustomerPhone string
	Status        domain.SaleStatus
	Limit         int
	Offset        int
}

// SaleReader defines read operations for sale data.
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves sales matching the given filters, newest first.
	ListSales(ctx context.Context, params ListSalesParams) ([]domain.Sale, error)

	// FindSaleItems retrieves the item lines of a sale.
	FindSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error)

	// FindSalePayments retrieves a sale's full payment history in
	// chronological order (the first entry is the reconciliation anchor).
	FindSalePayments(ctx context.Context, saleID string) ([]domain.SalePayment, error)

	// FindSalePaymentByID retrieves a single payment entry.
	FindSalePaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error)

	// FindReturnsBySaleID retrieves all returns recorded against a sale.
	FindReturnsBySaleID(ctx context.Context, saleID string) ([]domain.Return, error)

	// FindReturnByID retrieves a return record with its items.
	FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error)

	// CountReturnsBySaleID reports how many returns a sale has attached.
	CountReturnsBySaleID(ctx context.Context, saleID string) (int64, error)
}

// SaleWriter defines the atomic mutations of the customer sales ledger. Every
// method runs as a single database transaction: stock, item lines, ledger
// entries, and the sale's re-projected balances commit together or not at all.
type SaleWriter interface {
	// SaveSale persists a new sale with its items and optional initial
	// payment, decrementing product stock (clamped at zero) under row locks.
	SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, initialPayment *domain.SalePayment) error

	// AppendSalePayment adds a ledger entry and re-projects the sale's
	// balances from the full payment history.
	AppendSalePayment(ctx context.Context, payment domain.SalePayment) error

	// DeleteSalePayment removes a ledger entry and re-projects.
	DeleteSalePayment(ctx context.Context, saleID, paymentID, updatedBy string, updatedAt time.Time) error

	// ApplyReturn shrinks the sale to the base amounts carried by sale,
	// records the return with its items, appends the negative refund entry,
	// restores product stock, shrinks or removes the affected item lines,
	// and re-projects.
	ApplyReturn(ctx context.Context, sale domain.Sale, ret domain.Return, refund domain.SalePayment) error

	// ReverseReturn undoes ApplyReturn in full: deletes the refund entry and
	// the return record, restores the sale's base amounts to those carried by
	// sale, re-adds the returned quantities to the item lines, re-decrements
	// stock, and re-projects.
	ReverseReturn(ctx context.Context, sale domain.Sale, ret domain.Return) error

	// DeleteSale removes a sale, cascading to items and payments, and
	// restores the sold quantities to product stock.
	DeleteSale(ctx context.Context, saleID string) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
