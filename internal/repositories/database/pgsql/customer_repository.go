package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	"github.com/dokani-app/dokani_backend/internal/models"
	"github.com/dokani-app/dokani_backend/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

const selectCustomerColumns = `
	SELECT customer_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by
	FROM customers
`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.Name,
		&m.Phone,
		&m.Address,
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

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO customers (customer_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.CustomerID, m.Name, m.Phone, m.Address, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := scanCustomer(r.Pool.QueryRow(ctx, selectCustomerColumns+` WHERE customer_id = $1;`, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// FindCustomerByNameAndPhone performs the exact match used by sale creation's
// find-or-create flow.
func (r *PgxCustomerRepository) FindCustomerByNameAndPhone(ctx context.Context, name, phone string) (*domain.Customer, error) {
	m, err := scanCustomer(r.Pool.QueryRow(ctx, selectCustomerColumns+` WHERE name = $1 AND phone = $2 ORDER BY created_at LIMIT 1;`, name, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by name and phone", err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ListCustomers retrieves customers matching an optional name/phone search.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, error) {
	query := selectCustomerColumns + ` WHERE 1=1`
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		query += ` AND (name ILIKE $` + n + ` OR phone ILIKE $` + n + `)`
	}

	args = append(args, limit)
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

// UpdateCustomer writes all mutable columns of a customer.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE customers SET name = $2, phone = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $1;`,
		m.CustomerID, m.Name, m.Phone, m.Address, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer. Customers with sales on record are
// protected by the foreign key and surface as a conflict.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete customer "+customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
