package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dokani-app/dokani_backend/internal/core/domain"
	portsrepo "github.com/dokani-app/dokani_backend/internal/core/ports/repositories"
	portssvc "github.com/dokani-app/dokani_backend/internal/core/ports/services"
	"github.com/dokani-app/dokani_backend/internal/dto"
	"github.com/dokani-app/dokani_backend/internal/middleware"
)

// productService implements product CRUD. Stock movements driven by sales and
// returns are applied by the sale repository inside the ledger transaction,
// not here.
type productService struct {
	productRepo  portsrepo.ProductRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepository, categoryRepo portsrepo.CategoryRepository) portssvc.ProductSvcFacade {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CategoryID != "" {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		Quantity:      req.Quantity,
		UnitsPerBox:   req.UnitsPerBox,
		ProfitPerUnit: req.ProfitPerUnit,
		ProfitPerBox:  req.ProfitPerBox,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save product", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("name", product.Name))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, nameSearch, categoryID string, limit, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.ListProducts(ctx, nameSearch, categoryID, limit, offset)
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
				return nil, fmt.Errorf("failed to verify category: %w", err)
			}
		}
		product.CategoryID = *req.CategoryID
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.UnitsPerBox != nil {
		product.UnitsPerBox = *req.UnitsPerBox
	}
	if req.ProfitPerUnit != nil {
		product.ProfitPerUnit = *req.ProfitPerUnit
	}
	if req.ProfitPerBox != nil {
		product.ProfitPerBox = *req.ProfitPerBox
	}
	product.LastUpdatedAt = time.Now().UTC()
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("Product deleted", slog.String("product_id", productID), slog.String("user_id", userID))
	return nil
}
