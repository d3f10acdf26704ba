package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog products.
// GetForUpdate and AdjustStock form the stock store surface consumed by the
// inventory ledger and are only meaningful inside a transaction scope.
type ProductRepository interface {
	Create(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	GetForUpdate(ctx context.Context, id int64) (*model.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int64) error
}
