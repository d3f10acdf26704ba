package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// StockStore is the tx-scoped product access the ledger mutates stock through.
// Implementations must lock the product row for the remainder of the enclosing
// transaction so concurrent reservations cannot act on stale counters.
type StockStore interface {
	GetForUpdate(ctx context.Context, productID int64) (*model.Product, error)
	AdjustStock(ctx context.Context, productID, delta int64) error
}

// Ledger is the sole authority over product stock counters. It carries no
// atomicity of its own; every mutation happens inside the caller's
// transaction scope and is rolled back with it.
type Ledger struct {
	logger *slog.Logger
}

// New constructs the inventory ledger.
func New(logger *slog.Logger) *Ledger {
	return &Ledger{logger: logger}
}

// Reserve decrements stock by quantity and returns the product snapshot taken
// under the row lock, so callers can capture the price at this instant.
// Fails with ErrNotFound if the product does not exist and ErrInsufficientStock
// if quantity exceeds the current stock.
func (l *Ledger) Reserve(ctx context.Context, store StockStore, productID, quantity int64) (*model.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("product %d: %w", productID, domainErrors.ErrInvalidQuantity)
	}

	product, err := store.GetForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, domainErrors.ErrNotFound)
		}
		return nil, err
	}

	if quantity > product.Stock {
		return nil, fmt.Errorf("product %d: %w", productID, domainErrors.ErrInsufficientStock)
	}

	if err := store.AdjustStock(ctx, productID, -quantity); err != nil {
		return nil, err
	}

	product.Stock -= quantity
	return product, nil
}

// Release increments stock by quantity, restoring reserved units. A product
// deleted from the catalog after purchase cannot receive its units back; that
// case is logged and skipped so the caller's transaction can proceed.
func (l *Ledger) Release(ctx context.Context, store StockStore, productID, quantity int64) error {
	if quantity <= 0 {
		return nil
	}

	if _, err := store.GetForUpdate(ctx, productID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			l.logger.Warn("stock release skipped, product no longer exists",
				slog.Int64("product_id", productID),
				slog.Int64("quantity", quantity),
			)
			return nil
		}
		return err
	}

	return store.AdjustStock(ctx, productID, quantity)
}
