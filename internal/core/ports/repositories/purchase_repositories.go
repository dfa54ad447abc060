package repositories

import (
	"context"
	"time"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
)

// ListPurchasesParams narrows a purchase listing. Pending selects purchases
// with anything still owed on either balance; Cleared selects the rest.
type ListPurchasesParams struct {
	SupplierID string
	Pending    bool
	Cleared    bool
	Limit      int
	Offset     int
}

// PurchaseReader defines read operations for supplier purchase data.
type PurchaseReader interface {
	// FindPurchaseByID retrieves a specific purchase by its unique identifier.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)

	// ListPurchases retrieves purchases matching the given filters, newest first.
	ListPurchases(ctx context.Context, params ListPurchasesParams) ([]domain.Purchase, error)

	// FindPurchasePayments retrieves a purchase's payment history in
	// chronological order.
	FindPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error)

	// FindPurchasePaymentByID retrieves a single payment entry.
	FindPurchasePaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error)
}

// PurchaseWriter defines the atomic mutations of the supplier purchase ledger.
type PurchaseWriter interface {
	// SavePurchase persists a new purchase with its optional initial combined
	// payment entry.
	SavePurchase(ctx context.Context, purchase domain.Purchase, initialPayment *domain.PurchasePayment) error

	// AppendPurchasePayment adds a combined product/transport ledger entry and
	// re-projects both balance pairs from the full history.
	AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) error

	// DeletePurchasePayment removes a ledger entry and re-projects.
	DeletePurchasePayment(ctx context.Context, purchaseID, paymentID, updatedBy string, updatedAt time.Time) error

	// DeletePurchase removes a purchase, cascading to its payment entries.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
