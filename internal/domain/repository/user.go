package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users. The cancellation
// counter and blocked flag are mutated only by the fulfillment engine.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	IncrementCancelCount(ctx context.Context, id int64) (int64, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}
