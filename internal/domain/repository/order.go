package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations for orders. Line snapshots
// are written once at creation and never updated.
type OrderRepository interface {
	Create(ctx context.Context, userID int64, lines []model.OrderLine, total float64) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	// GetForUpdate locks the order row for the enclosing transaction, so
	// concurrent status transitions of the same order serialize.
	GetForUpdate(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
}
