package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	"github.com/dokani-app/dokani_backend/internal/models"
	"github.com/dokani-app/dokani_backend/internal/utils/mapping"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

const selectExpenseColumns = `
	SELECT expense_id, category, amount, description, expense_date, created_at, created_by, last_updated_at, last_updated_by
	FROM expenses
`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Category,
		&m.Amount,
		&m.Description,
		&m.ExpenseDate,
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

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expenses (expense_id, category, amount, description, expense_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.ExpenseID, m.Category, m.Amount, m.Description, m.ExpenseDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	m, err := scanExpense(r.Pool.QueryRow(ctx, selectExpenseColumns+` WHERE expense_id = $1;`, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}
	expense := mapping.ToDomainExpense(*m)
	return &expense, nil
}

// ListExpenses retrieves expenses matching the given filters, newest first.
// The From bound is inclusive and the To bound exclusive so callers can pass
// day boundaries without overlap.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, params portsrepo.ListExpensesParams) ([]domain.Expense, error) {
	query := selectExpenseColumns + ` WHERE 1=1`
	args := []interface{}{}

	if params.Category != "" {
		args = append(args, params.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if params.From != nil {
		args = append(args, *params.From)
		query += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		query += ` AND expense_date < $` + strconv.Itoa(len(args))
	}

	args = append(args, params.Limit)
	query += ` ORDER BY expense_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, params.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list expenses", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, mapping.ToDomainExpense(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}

// UpdateExpense writes all mutable columns of an expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET category = $2, amount = $3, description = $4, expense_date = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1;`,
		m.ExpenseID, m.Category, m.Amount, m.Description, m.ExpenseDate, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
