package repository

import "context"

// Factory describes access to domain repositories together with the unit of
// work boundary. Repositories obtained outside WithinTransaction auto-commit
// each call; repositories obtained from the tx-scoped Factory passed to fn
// share a single transaction that commits exactly when fn returns nil and
// rolls back on any error, discarding every intermediate write.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Factory) error) error
}
