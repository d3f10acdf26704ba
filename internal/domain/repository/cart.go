package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// CartRepository describes persistence operations for user carts.
// GetByUser returns ErrNotFound when the user has no cart at all.
type CartRepository interface {
	GetByUser(ctx context.Context, userID int64) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID, quantity int64) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
