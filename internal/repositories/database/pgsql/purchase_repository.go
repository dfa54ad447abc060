package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	"github.com/dokani-app/dokani_backend/internal/models"
	"github.com/dokani-app/dokani_backend/internal/utils/ledger"
	"github.com/dokani-app/dokani_backend/internal/utils/mapping"
)

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase ledger data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepositoryFacade {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaseRepositoryFacade = (*PgxPurchaseRepository)(nil)

// purchasePaymentHistory reads a purchase's base amounts and its full payment
// history in chronological order inside tx. The purchase row must already be
// locked FOR UPDATE.
func purchasePaymentHistory(ctx context.Context, tx pgx.Tx, purchaseID string) (models.Purchase, []domain.PurchasePayment, error) {
	var m models.Purchase
	err := tx.QueryRow(ctx, `SELECT base_amount, transport_fee FROM purchases WHERE purchase_id = $1;`, purchaseID).
		Scan(&m.BaseAmount, &m.TransportFee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, nil, apperrors.ErrNotFound
		}
		return m, nil, apperrors.NewAppError(500, "failed to read purchase "+purchaseID+" for projection", err)
	}

	rows, err := tx.Query(ctx, `SELECT payment_id, amount, transport_amount FROM purchase_payments WHERE purchase_id = $1 ORDER BY paid_at, created_at;`, purchaseID)
	if err != nil {
		return m, nil, apperrors.NewAppError(500, "failed to read payment history for purchase "+purchaseID, err)
	}
	defer rows.Close()

	payments := []domain.PurchasePayment{}
	for rows.Next() {
		var p domain.PurchasePayment
		if err := rows.Scan(&p.PaymentID, &p.Amount, &p.TransportAmount); err != nil {
			return m, nil, apperrors.NewAppError(500, "failed to scan payment row for purchase "+purchaseID, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return m, nil, apperrors.NewAppError(500, "error iterating payment rows for purchase "+purchaseID, err)
	}
	return m, payments, nil
}

// reprojectPurchase re-derives both balance pairs and the status from the full
// payment history inside tx. The purchase row must already be locked.
func (r *PgxPurchaseRepository) reprojectPurchase(ctx context.Context, tx pgx.Tx, purchaseID, updatedBy string, updatedAt time.Time) error {
	m, payments, err := purchasePaymentHistory(ctx, tx, purchaseID)
	if err != nil {
		return err
	}

	balances := ledger.Project(m.BaseAmount, m.TransportFee, ledger.PurchaseLines(payments))
	status := ledger.PurchaseStatusFor(balances)

	_, err = tx.Exec(ctx, `
		UPDATE purchases
		SET amount_paid = $2, remaining_amount = $3, overpaid_amount = $4,
		    transport_paid = $5, transport_remaining = $6, transport_overpaid = $7,
		    status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE purchase_id = $1;`,
		purchaseID,
		balances.AmountPaid,
		balances.RemainingAmount,
		balances.OverpaidAmount,
		balances.TransportPaid,
		balances.TransportRemaining,
		balances.TransportOverpaid,
		string(status),
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write projected balances for purchase "+purchaseID, err)
	}
	return nil
}

func lockPurchase(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT purchase_id FROM purchases WHERE purchase_id = $1 FOR UPDATE;`, purchaseID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock purchase "+purchaseID, err)
	}
	return nil
}

const insertPurchasePaymentQuery = `
	INSERT INTO purchase_payments (payment_id, purchase_id, amount, transport_amount, method, notes, paid_at, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// SavePurchase persists a new purchase with its optional initial combined entry.
func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, initialPayment *domain.PurchasePayment) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPurchase(purchase)
	_, err = tx.Exec(ctx, `
		INSERT INTO purchases (
			purchase_id, supplier_id, product_name, quantity, unit_price, base_amount, transport_fee,
			purchase_date, amount_paid, remaining_amount, overpaid_amount,
			transport_paid, transport_remaining, transport_overpaid, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`,
		m.PurchaseID,
		m.SupplierID,
		m.ProductName,
		m.Quantity,
		m.UnitPrice,
		m.BaseAmount,
		m.TransportFee,
		m.PurchaseDate,
		m.AmountPaid,
		m.RemainingAmount,
		m.OverpaidAmount,
		m.TransportPaid,
		m.TransportRemaining,
		m.TransportOverpaid,
		string(m.Status),
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert purchase "+m.PurchaseID, err)
	}

	if initialPayment != nil {
		mp := mapping.ToModelPurchasePayment(*initialPayment)
		_, err = tx.Exec(ctx, insertPurchasePaymentQuery,
			mp.PaymentID,
			mp.PurchaseID,
			mp.Amount,
			mp.TransportAmount,
			mp.Method,
			mp.Notes,
			mp.PaidAt,
			mp.CreatedAt,
			mp.CreatedBy,
			mp.LastUpdatedAt,
			mp.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert initial payment for purchase "+m.PurchaseID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// AppendPurchasePayment adds a combined ledger entry and re-projects.
func (r *PgxPurchaseRepository) AppendPurchasePayment(ctx context.Context, payment domain.PurchasePayment) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockPurchase(ctx, tx, payment.PurchaseID); err != nil {
		return err
	}

	mp := mapping.ToModelPurchasePayment(payment)
	_, err = tx.Exec(ctx, insertPurchasePaymentQuery,
		mp.PaymentID,
		mp.PurchaseID,
		mp.Amount,
		mp.TransportAmount,
		mp.Method,
		mp.Notes,
		mp.PaidAt,
		mp.CreatedAt,
		mp.CreatedBy,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for purchase "+payment.PurchaseID, err)
	}

	if err := r.reprojectPurchase(ctx, tx, payment.PurchaseID, payment.CreatedBy, payment.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePurchasePayment removes a ledger entry and re-projects.
func (r *PgxPurchaseRepository) DeletePurchasePayment(ctx context.Context, purchaseID, paymentID, updatedBy string, updatedAt time.Time) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockPurchase(ctx, tx, purchaseID); err != nil {
		return err
	}

	// Re-checked under the lock; a concurrent append can otherwise expose the
	// anchor entry to deletion between the service's read and this point.
	_, history, err := purchasePaymentHistory(ctx, tx, purchaseID)
	if err != nil {
		return err
	}
	ids := make([]string, len(history))
	for i, p := range history {
		ids[i] = p.PaymentID
	}
	if ledger.AnchorProtected(paymentID, ids) {
		return domain.ErrProtectedEntry
	}

	tag, err := tx.Exec(ctx, `DELETE FROM purchase_payments WHERE payment_id = $1 AND purchase_id = $2;`, paymentID, purchaseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.reprojectPurchase(ctx, tx, purchaseID, updatedBy, updatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeletePurchase removes a purchase, cascading to its payment entries.
func (r *PgxPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete purchase "+purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const selectPurchaseColumns = `
	SELECT purchase_id, supplier_id, product_name, quantity, unit_price, base_amount, transport_fee,
	       purchase_date, amount_paid, remaining_amount, overpaid_amount,
	       transport_paid, transport_remaining, transport_overpaid, status, notes,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM purchases
`

func scanPurchase(row pgx.Row) (*models.Purchase, error) {
	var m models.Purchase
	err := row.Scan(
		&m.PurchaseID,
		&m.SupplierID,
		&m.ProductName,
		&m.Quantity,
		&m.UnitPrice,
		&m.BaseAmount,
		&m.TransportFee,
		&m.PurchaseDate,
		&m.AmountPaid,
		&m.RemainingAmount,
		&m.OverpaidAmount,
		&m.TransportPaid,
		&m.TransportRemaining,
		&m.TransportOverpaid,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPurchaseByID retrieves a purchase by its ID.
func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	m, err := scanPurchase(r.Pool.QueryRow(ctx, selectPurchaseColumns+` WHERE purchase_id = $1;`, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase by ID "+purchaseID, err)
	}
	purchase := mapping.ToDomainPurchase(*m)
	return &purchase, nil
}

// ListPurchases retrieves purchases matching the given filters, newest first.
// Pending selects purchases with anything still owed on either balance pair.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, params portsrepo.ListPurchasesParams) ([]domain.Purchase, error) {
	query := selectPurchaseColumns + ` WHERE 1=1`
	args := []interface{}{}

	if params.SupplierID != "" {
		args = append(args, params.SupplierID)
		query += ` AND supplier_id = $` + strconv.Itoa(len(args))
	}
	if params.Pending {
		query += ` AND (remaining_amount > 0 OR transport_remaining > 0)`
	}
	if params.Cleared {
		query += ` AND remaining_amount = 0 AND transport_remaining = 0`
	}

	args = append(args, params.Limit)
	query += ` ORDER BY purchase_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, params.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list purchases", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		m, err := scanPurchase(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase row", err)
		}
		purchases = append(purchases, mapping.ToDomainPurchase(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase rows", err)
	}
	return purchases, nil
}

const selectPurchasePaymentColumns = `
	SELECT payment_id, purchase_id, amount, transport_amount, method, notes, paid_at,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM purchase_payments
`

func scanPurchasePayment(row pgx.Row) (*models.PurchasePayment, error) {
	var m models.PurchasePayment
	err := row.Scan(
		&m.PaymentID,
		&m.PurchaseID,
		&m.Amount,
		&m.TransportAmount,
		&m.Method,
		&m.Notes,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPurchasePayments retrieves a purchase's payment history in
// chronological order.
func (r *PgxPurchaseRepository) FindPurchasePayments(ctx context.Context, purchaseID string) ([]domain.PurchasePayment, error) {
	rows, err := r.Pool.Query(ctx, selectPurchasePaymentColumns+` WHERE purchase_id = $1 ORDER BY paid_at, created_at;`, purchaseID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for purchase "+purchaseID, err)
	}
	defer rows.Close()

	payments := []models.PurchasePayment{}
	for rows.Next() {
		m, err := scanPurchasePayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for purchase "+purchaseID, err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for purchase "+purchaseID, err)
	}
	return mapping.ToDomainPurchasePaymentSlice(payments), nil
}

// FindPurchasePaymentByID retrieves a single payment entry.
func (r *PgxPurchaseRepository) FindPurchasePaymentByID(ctx context.Context, paymentID string) (*domain.PurchasePayment, error) {
	m, err := scanPurchasePayment(r.Pool.QueryRow(ctx, selectPurchasePaymentColumns+` WHERE payment_id = $1;`, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	payment := mapping.ToDomainPurchasePayment(*m)
	return &payment, nil
}
