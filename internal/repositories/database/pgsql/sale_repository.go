package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	"github.com/dokani-app/dokani_backend/internal/models"
	"github.com/dokani-app/dokani_backend/internal/utils/ledger"
	"github.com/dokani-app/dokani_backend/internal/utils/mapping"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale and ledger data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// salePaymentHistory reads a sale's base amount and its full payment history
// in chronological order inside tx. The sale row must already be locked
// FOR UPDATE.
func salePaymentHistory(ctx context.Context, tx pgx.Tx, saleID string) (decimal.Decimal, []domain.SalePayment, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT total_amount FROM sales WHERE sale_id = $1;`, saleID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil, apperrors.ErrNotFound
		}
		return decimal.Zero, nil, apperrors.NewAppError(500, "failed to read sale "+saleID+" for projection", err)
	}

	rows, err := tx.Query(ctx, `SELECT payment_id, amount FROM sale_payments WHERE sale_id = $1 ORDER BY paid_at, created_at;`, saleID)
	if err != nil {
		return decimal.Zero, nil, apperrors.NewAppError(500, "failed to read payment history for sale "+saleID, err)
	}
	defer rows.Close()

	payments := []domain.SalePayment{}
	for rows.Next() {
		var p domain.SalePayment
		if err := rows.Scan(&p.PaymentID, &p.Amount); err != nil {
			return decimal.Zero, nil, apperrors.NewAppError(500, "failed to scan payment row for sale "+saleID, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, nil, apperrors.NewAppError(500, "error iterating payment rows for sale "+saleID, err)
	}
	return total, payments, nil
}

// reprojectSale re-derives a sale's balances and status from its full payment
// history inside tx. The sale row must already be locked FOR UPDATE.
func (r *PgxSaleRepository) reprojectSale(ctx context.Context, tx pgx.Tx, saleID, updatedBy string, updatedAt time.Time) error {
	total, payments, err := salePaymentHistory(ctx, tx, saleID)
	if err != nil {
		return err
	}

	balances := ledger.Project(total, decimal.Zero, ledger.SaleLines(payments))
	status := ledger.SaleStatusFor(balances)

	_, err = tx.Exec(ctx, `
		UPDATE sales
		SET amount_paid = $2, remaining_amount = $3, overpaid_amount = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE sale_id = $1;`,
		saleID,
		balances.AmountPaid,
		balances.RemainingAmount,
		balances.OverpaidAmount,
		string(status),
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write projected balances for sale "+saleID, err)
	}
	return nil
}

// lockSale acquires the row lock that serializes all ledger mutations of one sale.
func lockSale(ctx context.Context, tx pgx.Tx, saleID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT sale_id FROM sales WHERE sale_id = $1 FOR UPDATE;`, saleID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock sale "+saleID, err)
	}
	return nil
}

// SaveSale persists a new sale with its items and optional initial payment,
// decrementing product stock under row locks within one transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale, items []domain.SaleItem, initialPayment *domain.SalePayment) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	modelSale := mapping.ToModelSale(sale)
	_, err = tx.Exec(ctx, `
		INSERT INTO sales (
			sale_id, customer_id, sale_date, subtotal, discount, profit, total_amount,
			amount_paid, remaining_amount, overpaid_amount, status, due_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`,
		modelSale.SaleID,
		modelSale.CustomerID,
		modelSale.SaleDate,
		modelSale.Subtotal,
		modelSale.Discount,
		modelSale.Profit,
		modelSale.TotalAmount,
		modelSale.AmountPaid,
		modelSale.RemainingAmount,
		modelSale.OverpaidAmount,
		string(modelSale.Status),
		modelSale.DueDate,
		modelSale.Notes,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+modelSale.SaleID, err)
	}

	// Lock the product rows before touching stock, in a stable order to avoid
	// deadlocks between concurrent sales.
	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	lockRows, err := tx.Query(ctx, `SELECT product_id FROM products WHERE product_id = ANY($1) ORDER BY product_id FOR UPDATE;`, productIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock products for sale "+modelSale.SaleID, err)
	}
	lockRows.Close()

	batch := &pgx.Batch{}
	for _, item := range items {
		modelItem := mapping.ToModelSaleItem(item)
		batch.Queue(`
			INSERT INTO sale_items (sale_item_id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			modelItem.SaleItemID,
			modelItem.SaleID,
			modelItem.ProductID,
			modelItem.Quantity,
			modelItem.UnitPrice,
			modelItem.Subtotal,
		)
		// Stock is clamped at zero rather than rejected; shops record sales
		// even when the book count has drifted below reality.
		batch.Queue(`UPDATE products SET quantity = GREATEST(quantity - $2, 0), last_updated_at = $3, last_updated_by = $4 WHERE product_id = $1;`,
			modelItem.ProductID, modelItem.Quantity, modelSale.LastUpdatedAt, modelSale.LastUpdatedBy)
	}
	if initialPayment != nil {
		modelPayment := mapping.ToModelSalePayment(*initialPayment)
		batch.Queue(insertSalePaymentQuery,
			modelPayment.PaymentID,
			modelPayment.SaleID,
			modelPayment.Amount,
			modelPayment.Method,
			modelPayment.Notes,
			modelPayment.PaidAt,
			modelPayment.CreatedAt,
			modelPayment.CreatedBy,
			modelPayment.LastUpdatedAt,
			modelPayment.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute item batch for sale "+modelSale.SaleID, err)
	}

	return r.Commit(ctx, tx)
}

const insertSalePaymentQuery = `
	INSERT INTO sale_payments (payment_id, sale_id, amount, method, notes, paid_at, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// AppendSalePayment adds a ledger entry and re-projects the sale's balances
// from the full payment history.
func (r *PgxSaleRepository) AppendSalePayment(ctx context.Context, payment domain.SalePayment) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockSale(ctx, tx, payment.SaleID); err != nil {
		return err
	}

	// The service pre-checks the cap against stale balances; this check runs
	// under the row lock and is the one that counts.
	total, history, err := salePaymentHistory(ctx, tx, payment.SaleID)
	if err != nil {
		return err
	}
	if ledger.CapExceeded(total, ledger.SaleLines(history), payment.Amount) {
		return domain.ErrPaymentExceedsDue
	}

	modelPayment := mapping.ToModelSalePayment(payment)
	_, err = tx.Exec(ctx, insertSalePaymentQuery,
		modelPayment.PaymentID,
		modelPayment.SaleID,
		modelPayment.Amount,
		modelPayment.Method,
		modelPayment.Notes,
		modelPayment.PaidAt,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for sale "+payment.SaleID, err)
	}

	if err := r.reprojectSale(ctx, tx, payment.SaleID, payment.CreatedBy, payment.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteSalePayment removes a ledger entry and re-projects.
func (r *PgxSaleRepository) DeleteSalePayment(ctx context.Context, saleID, paymentID, updatedBy string, updatedAt time.Time) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockSale(ctx, tx, saleID); err != nil {
		return err
	}

	_, history, err := salePaymentHistory(ctx, tx, saleID)
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

	tag, err := tx.Exec(ctx, `DELETE FROM sale_payments WHERE payment_id = $1 AND sale_id = $2;`, paymentID, saleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.reprojectSale(ctx, tx, saleID, updatedBy, updatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyReturn applies a return in one transaction: the sale's base amounts
// shrink to those carried by sale, the return and its items are recorded, the
// negative refund entry lands in the ledger, returned stock comes back, and
// the item lines shrink or disappear.
func (r *PgxSaleRepository) ApplyReturn(ctx context.Context, sale domain.Sale, ret domain.Return, refund domain.SalePayment) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockSale(ctx, tx, sale.SaleID); err != nil {
		return err
	}

	modelSale := mapping.ToModelSale(sale)
	_, err = tx.Exec(ctx, `
		UPDATE sales SET subtotal = $2, profit = $3, total_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $1;`,
		modelSale.SaleID, modelSale.Subtotal, modelSale.Profit, modelSale.TotalAmount, modelSale.LastUpdatedAt, modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to shrink sale "+sale.SaleID, err)
	}

	modelReturn := mapping.ToModelReturn(ret)
	_, err = tx.Exec(ctx, `
		INSERT INTO returns (return_id, sale_id, payment_id, reason, refund_amount, subtotal_share, profit_share, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		modelReturn.ReturnID,
		modelReturn.SaleID,
		modelReturn.PaymentID,
		modelReturn.Reason,
		modelReturn.RefundAmount,
		modelReturn.SubtotalShare,
		modelReturn.ProfitShare,
		modelReturn.CreatedAt,
		modelReturn.CreatedBy,
		modelReturn.LastUpdatedAt,
		modelReturn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert return "+ret.ReturnID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range ret.Items {
		modelItem := mapping.ToModelReturnItem(item)
		// The quantity predicate re-checks the sold amount under the lock; a
		// zero-row update means the line no longer covers the return.
		tag, err := tx.Exec(ctx, `
			UPDATE sale_items SET quantity = quantity - $3, subtotal = subtotal - $4
			WHERE sale_id = $1 AND product_id = $2 AND quantity >= $3;`,
			sale.SaleID, modelItem.ProductID, modelItem.Quantity, modelItem.UnitPrice.Mul(decimal.NewFromInt(modelItem.Quantity)))
		if err != nil {
			return apperrors.NewAppError(500, "failed to shrink item line for sale "+sale.SaleID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: product %s", domain.ErrReturnExceedsSold, modelItem.ProductID)
		}
		batch.Queue(`
			INSERT INTO return_items (return_item_id, return_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5);`,
			modelItem.ReturnItemID, modelItem.ReturnID, modelItem.ProductID, modelItem.Quantity, modelItem.UnitPrice)
		batch.Queue(`UPDATE products SET quantity = quantity + $2, last_updated_at = $3, last_updated_by = $4 WHERE product_id = $1;`,
			modelItem.ProductID, modelItem.Quantity, modelReturn.CreatedAt, modelReturn.CreatedBy)
	}
	batch.Queue(`DELETE FROM sale_items WHERE sale_id = $1 AND quantity <= 0;`, sale.SaleID)

	modelRefund := mapping.ToModelSalePayment(refund)
	batch.Queue(insertSalePaymentQuery,
		modelRefund.PaymentID,
		modelRefund.SaleID,
		modelRefund.Amount,
		modelRefund.Method,
		modelRefund.Notes,
		modelRefund.PaidAt,
		modelRefund.CreatedAt,
		modelRefund.CreatedBy,
		modelRefund.LastUpdatedAt,
		modelRefund.LastUpdatedBy,
	)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute return batch for sale "+sale.SaleID, err)
	}

	if err := r.reprojectSale(ctx, tx, sale.SaleID, ret.CreatedBy, ret.CreatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReverseReturn undoes ApplyReturn in full within one transaction.
func (r *PgxSaleRepository) ReverseReturn(ctx context.Context, sale domain.Sale, ret domain.Return) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockSale(ctx, tx, sale.SaleID); err != nil {
		return err
	}

	modelSale := mapping.ToModelSale(sale)
	_, err = tx.Exec(ctx, `
		UPDATE sales SET subtotal = $2, profit = $3, total_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $1;`,
		modelSale.SaleID, modelSale.Subtotal, modelSale.Profit, modelSale.TotalAmount, modelSale.LastUpdatedAt, modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to restore sale "+sale.SaleID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range ret.Items {
		modelItem := mapping.ToModelReturnItem(item)
		lineSubtotal := modelItem.UnitPrice.Mul(decimal.NewFromInt(modelItem.Quantity))
		// Re-grow the item line, recreating it if the return removed it entirely.
		batch.Queue(`
			INSERT INTO sale_items (sale_item_id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES (gen_random_uuid()::text, $1, $2, $3, $4, $5)
			ON CONFLICT (sale_id, product_id) DO UPDATE
			SET quantity = sale_items.quantity + EXCLUDED.quantity,
			    subtotal = sale_items.subtotal + EXCLUDED.subtotal;`,
			sale.SaleID, modelItem.ProductID, modelItem.Quantity, modelItem.UnitPrice, lineSubtotal)
		batch.Queue(`UPDATE products SET quantity = GREATEST(quantity - $2, 0), last_updated_at = $3, last_updated_by = $4 WHERE product_id = $1;`,
			modelItem.ProductID, modelItem.Quantity, modelSale.LastUpdatedAt, modelSale.LastUpdatedBy)
	}
	batch.Queue(`DELETE FROM sale_payments WHERE payment_id = $1 AND sale_id = $2;`, ret.PaymentID, sale.SaleID)
	batch.Queue(`DELETE FROM returns WHERE return_id = $1;`, ret.ReturnID)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute reversal batch for return "+ret.ReturnID, err)
	}

	if err := r.reprojectSale(ctx, tx, sale.SaleID, sale.LastUpdatedBy, sale.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteSale removes a sale, cascading to items, payments, and returns, and
// restores the sold quantities to product stock.
func (r *PgxSaleRepository) DeleteSale(ctx context.Context, saleID string) error {
	tx, ctx, cancel, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer r.Rollback(ctx, tx)

	if err := lockSale(ctx, tx, saleID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE products p SET quantity = p.quantity + si.quantity
		FROM sale_items si
		WHERE si.sale_id = $1 AND si.product_id = p.product_id;`, saleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to restore stock for sale "+saleID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

const selectSaleColumns = `
	SELECT sale_id, customer_id, sale_date, subtotal, discount, profit, total_amount,
	       amount_paid, remaining_amount, overpaid_amount, status, due_date, notes,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM sales
`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.CustomerID,
		&m.SaleDate,
		&m.Subtotal,
		&m.Discount,
		&m.Profit,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.RemainingAmount,
		&m.OverpaidAmount,
		&m.Status,
		&m.DueDate,
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

// FindSaleByID retrieves a sale by its ID.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	m, err := scanSale(r.Pool.QueryRow(ctx, selectSaleColumns+` WHERE sale_id = $1;`, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}
	sale := mapping.ToDomainSale(*m)
	return &sale, nil
}

// ListSales retrieves sales matching the given filters, newest first.
func (r *PgxSaleRepository) ListSales(ctx context.Context, params portsrepo.ListSalesParams) ([]domain.Sale, error) {
	query := `
		SELECT s.sale_id, s.customer_id, s.sale_date, s.subtotal, s.discount, s.profit, s.total_amount,
		       s.amount_paid, s.remaining_amount, s.overpaid_amount, s.status, s.due_date, s.notes,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM sales s
		JOIN customers c ON c.customer_id = s.customer_id
		WHERE 1=1`
	args := []interface{}{}

	if params.SaleID != "" {
		args = append(args, params.SaleID)
		query += ` AND s.sale_id = $` + strconv.Itoa(len(args))
	}
	if params.CustomerName != "" {
		args = append(args, "%"+params.CustomerName+"%")
		query += ` AND c.name ILIKE $` + strconv.Itoa(len(args))
	}
	if params.CustomerPhone != "" {
		args = append(args, params.CustomerPhone)
		query += ` AND c.phone = $` + strconv.Itoa(len(args))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		query += ` AND s.status = $` + strconv.Itoa(len(args))
	}

	args = append(args, params.Limit)
	query += ` ORDER BY s.sale_date DESC, s.created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, params.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list sales", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale row", err)
		}
		sales = append(sales, mapping.ToDomainSale(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}
	return sales, nil
}

// FindSaleItems retrieves the item lines of a sale with product names joined in.
func (r *PgxSaleRepository) FindSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT si.sale_item_id, si.sale_id, si.product_id, COALESCE(p.name, ''), si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		LEFT JOIN products p ON p.product_id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.sale_item_id;`, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for sale "+saleID, err)
	}
	defer rows.Close()

	items := []models.SaleItem{}
	for rows.Next() {
		var m models.SaleItem
		if err := rows.Scan(&m.SaleItemID, &m.SaleID, &m.ProductID, &m.ProductName, &m.Quantity, &m.UnitPrice, &m.Subtotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for sale "+saleID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for sale "+saleID, err)
	}
	return mapping.ToDomainSaleItemSlice(items), nil
}

const selectSalePaymentColumns = `
	SELECT payment_id, sale_id, amount, method, notes, paid_at, created_at, created_by, last_updated_at, last_updated_by
	FROM sale_payments
`

func scanSalePayment(row pgx.Row) (*models.SalePayment, error) {
	var m models.SalePayment
	err := row.Scan(
		&m.PaymentID,
		&m.SaleID,
		&m.Amount,
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

// FindSalePayments retrieves a sale's payment history in chronological order.
func (r *PgxSaleRepository) FindSalePayments(ctx context.Context, saleID string) ([]domain.SalePayment, error) {
	rows, err := r.Pool.Query(ctx, selectSalePaymentColumns+` WHERE sale_id = $1 ORDER BY paid_at, created_at;`, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for sale "+saleID, err)
	}
	defer rows.Close()

	payments := []models.SalePayment{}
	for rows.Next() {
		m, err := scanSalePayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for sale "+saleID, err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for sale "+saleID, err)
	}
	return mapping.ToDomainSalePaymentSlice(payments), nil
}

// FindSalePaymentByID retrieves a single payment entry.
func (r *PgxSaleRepository) FindSalePaymentByID(ctx context.Context, paymentID string) (*domain.SalePayment, error) {
	m, err := scanSalePayment(r.Pool.QueryRow(ctx, selectSalePaymentColumns+` WHERE payment_id = $1;`, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	payment := mapping.ToDomainSalePayment(*m)
	return &payment, nil
}

const selectReturnColumns = `
	SELECT return_id, sale_id, payment_id, reason, refund_amount, subtotal_share, profit_share,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM returns
`

func scanReturn(row pgx.Row) (*models.Return, error) {
	var m models.Return
	err := row.Scan(
		&m.ReturnID,
		&m.SaleID,
		&m.PaymentID,
		&m.Reason,
		&m.RefundAmount,
		&m.SubtotalShare,
		&m.ProfitShare,
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

// FindReturnsBySaleID retrieves all returns recorded against a sale.
func (r *PgxSaleRepository) FindReturnsBySaleID(ctx context.Context, saleID string) ([]domain.Return, error) {
	rows, err := r.Pool.Query(ctx, selectReturnColumns+` WHERE sale_id = $1 ORDER BY created_at;`, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query returns for sale "+saleID, err)
	}
	defer rows.Close()

	returns := []domain.Return{}
	for rows.Next() {
		m, err := scanReturn(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan return row for sale "+saleID, err)
		}
		returns = append(returns, mapping.ToDomainReturn(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating return rows for sale "+saleID, err)
	}
	return returns, nil
}

// FindReturnByID retrieves a return record with its items.
func (r *PgxSaleRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.Return, error) {
	m, err := scanReturn(r.Pool.QueryRow(ctx, selectReturnColumns+` WHERE return_id = $1;`, returnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find return by ID "+returnID, err)
	}
	ret := mapping.ToDomainReturn(*m)

	rows, err := r.Pool.Query(ctx, `
		SELECT return_item_id, return_id, product_id, quantity, unit_price
		FROM return_items
		WHERE return_id = $1;`, returnID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for return "+returnID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mi models.ReturnItem
		if err := rows.Scan(&mi.ReturnItemID, &mi.ReturnID, &mi.ProductID, &mi.Quantity, &mi.UnitPrice); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for return "+returnID, err)
		}
		ret.Items = append(ret.Items, mapping.ToDomainReturnItem(mi))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for return "+returnID, err)
	}
	return &ret, nil
}

// CountReturnsBySaleID reports how many returns a sale has attached.
func (r *PgxSaleRepository) CountReturnsBySaleID(ctx context.Context, saleID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM returns WHERE sale_id = $1;`, saleID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count returns for sale "+saleID, err)
	}
	return count, nil
}
