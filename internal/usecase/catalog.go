package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase manages the product catalog. Stock written here is the
// initial/administrative value; purchase-time mutation goes through the ledger.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Create adds a product to the catalog.
func (u *CatalogUseCase) Create(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error) {
	if err := validateProduct(name, price, stock); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, strings.TrimSpace(name), description, price, stock)
}

// Update replaces product fields.
func (u *CatalogUseCase) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product.Name, product.Price, product.Stock); err != nil {
		return nil, err
	}
	return u.products.Update(ctx, product)
}

// Delete removes a product from the catalog.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}

// Get fetches a single product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns the full catalog.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

func validateProduct(name string, price float64, stock int64) error {
	if strings.TrimSpace(name) == "" {
		return domainErrors.ErrInvalidProduct
	}
	if price <= 0 {
		return domainErrors.ErrInvalidPrice
	}
	if stock < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	return nil
}
