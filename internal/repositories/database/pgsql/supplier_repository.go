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

type PgxSupplierRepository struct {
	BaseRepository
}

// newPgxSupplierRepository creates a new repository for supplier data.
func newPgxSupplierRepository(pool *pgxpool.Pool) portsrepo.SupplierRepository {
	return &PgxSupplierRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SupplierRepository = (*PgxSupplierRepository)(nil)

const selectSupplierColumns = `
	SELECT supplier_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by
	FROM suppliers
`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	var m models.Supplier
	err := row.Scan(
		&m.SupplierID,
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

// SaveSupplier inserts a new supplier.
func (r *PgxSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO suppliers (supplier_id, name, phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.SupplierID, m.Name, m.Phone, m.Address, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save supplier "+m.SupplierID, err)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	m, err := scanSupplier(r.Pool.QueryRow(ctx, selectSupplierColumns+` WHERE supplier_id = $1;`, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier by ID "+supplierID, err)
	}
	supplier := mapping.ToDomainSupplier(*m)
	return &supplier, nil
}

// FindSupplierByName performs the exact match used by purchase creation's
// find-or-create flow.
func (r *PgxSupplierRepository) FindSupplierByName(ctx context.Context, name string) (*domain.Supplier, error) {
	m, err := scanSupplier(r.Pool.QueryRow(ctx, selectSupplierColumns+` WHERE name = $1 ORDER BY created_at LIMIT 1;`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier by name", err)
	}
	supplier := mapping.ToDomainSupplier(*m)
	return &supplier, nil
}

// ListSuppliers retrieves suppliers matching an optional name search.
func (r *PgxSupplierRepository) ListSuppliers(ctx context.Context, search string, limit, offset int) ([]domain.Supplier, error) {
	query := selectSupplierColumns + ` WHERE 1=1`
	args := []interface{}{}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list suppliers", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		m, err := scanSupplier(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}
	return suppliers, nil
}

// UpdateSupplier writes all mutable columns of a supplier.
func (r *PgxSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE suppliers SET name = $2, phone = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE supplier_id = $1;`,
		m.SupplierID, m.Name, m.Phone, m.Address, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update supplier "+m.SupplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSupplier removes a supplier. Suppliers with purchases on record are
// protected by the foreign key and surface as a conflict.
func (r *PgxSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM suppliers WHERE supplier_id = $1;`, supplierID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete supplier "+supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
