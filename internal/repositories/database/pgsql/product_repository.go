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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const selectProductColumns = `
	SELECT product_id, COALESCE(category_id, ''), name, unit_price, quantity, units_per_box, profit_per_unit, profit_per_box,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM products
`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.CategoryID,
		&m.Name,
		&m.UnitPrice,
		&m.Quantity,
		&m.UnitsPerBox,
		&m.ProfitPerUnit,
		&m.ProfitPerBox,
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

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO products (product_id, category_id, name, unit_price, quantity, units_per_box, profit_per_unit, profit_per_box,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.ProductID,
		m.CategoryID,
		m.Name,
		m.UnitPrice,
		m.Quantity,
		m.UnitsPerBox,
		m.ProfitPerUnit,
		m.ProfitPerBox,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	m, err := scanProduct(r.Pool.QueryRow(ctx, selectProductColumns+` WHERE product_id = $1;`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}
	product := mapping.ToDomainProduct(*m)
	return &product, nil
}

// FindProductsByIDs retrieves the given products keyed by product ID. A
// missing ID is simply absent from the map; callers decide whether that is an
// error.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, selectProductColumns+` WHERE product_id = ANY($1);`, productIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products by IDs", err)
	}
	defer rows.Close()

	products := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products[m.ProductID] = mapping.ToDomainProduct(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

// ListProducts retrieves products filtered by name search and category.
func (r *PgxProductRepository) ListProducts(ctx context.Context, nameSearch, categoryID string, limit, offset int) ([]domain.Product, error) {
	query := selectProductColumns + ` WHERE 1=1`
	args := []interface{}{}

	if nameSearch != "" {
		args = append(args, "%"+nameSearch+"%")
		query += ` AND name ILIKE $` + strconv.Itoa(len(args))
	}
	if categoryID != "" {
		args = append(args, categoryID)
		query += ` AND category_id = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY name LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, mapping.ToDomainProduct(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}
	return products, nil
}

// UpdateProduct writes all mutable columns of a product.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET category_id = NULLIF($2, ''), name = $3, unit_price = $4, quantity = $5, units_per_box = $6,
		    profit_per_unit = $7, profit_per_box = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;`,
		m.ProductID,
		m.CategoryID,
		m.Name,
		m.UnitPrice,
		m.Quantity,
		m.UnitsPerBox,
		m.ProfitPerUnit,
		m.ProfitPerBox,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. Products referenced by sale items are
// protected by the foreign key and surface as a conflict.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete product "+productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
