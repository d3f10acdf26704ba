package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/ledger"
)

// FulfillmentUseCase orchestrates cart-to-order conversion and order
// cancellation. Each operation runs as one unit of work: every stock
// mutation, record write, and reputation change commits or rolls back
// together.
type FulfillmentUseCase struct {
	repos          repository.Factory
	ledger         *ledger.Ledger
	blockThreshold int64
	logger         *slog.Logger
}

// NewFulfillmentUseCase constructs FulfillmentUseCase. blockThreshold is the
// number of self-service cancellations after which a user is blocked; the
// config layer guarantees it is positive.
func NewFulfillmentUseCase(repos repository.Factory, ldg *ledger.Ledger, blockThreshold int64, logger *slog.Logger) *FulfillmentUseCase {
	return &FulfillmentUseCase{repos: repos, ledger: ldg, blockThreshold: blockThreshold, logger: logger}
}

// PlaceOrderFromCart converts the user's cart into a pending order. Stock is
// reserved per line through the ledger with the price captured under the row
// lock; the first failing line aborts the transaction, so no partial decrement
// is ever observable. The cart does not survive a successful placement.
func (u *FulfillmentUseCase) PlaceOrderFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	var placed *model.Order
	err := u.repos.WithinTransaction(ctx, func(ctx context.Context, tx repository.Factory) error {
		buyer, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		// The auth gate already rejected blocked users, but that read may be
		// stale; this one is inside the placement transaction.
		if buyer.Blocked {
			return domainErrors.ErrUserBlocked
		}

		cart, err := tx.Carts().GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrEmptyCart
			}
			return err
		}
		if cart.Empty() {
			return domainErrors.ErrEmptyCart
		}

		products := tx.Products()
		lines := make([]model.OrderLine, 0, len(cart.Items))
		var total float64
		for _, item := range cart.Items {
			product, err := u.ledger.Reserve(ctx, products, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			total += product.Price * float64(item.Quantity)
			lines = append(lines, model.OrderLine{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order, err := tx.Orders().Create(ctx, userID, lines, total)
		if err != nil {
			return err
		}
		if err := tx.Carts().DeleteByUser(ctx, userID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("order placed",
		slog.Int64("order_id", placed.ID),
		slog.Int64("user_id", userID),
		slog.Float64("total", placed.Total),
	)
	return placed, nil
}

// CancelOrder cancels an order, restoring stock for every line whose product
// still exists. Only the order's owner or an admin may cancel. A self-service
// cancellation counts against the owner's cancellation counter and blocks the
// account once the threshold is reached; admin overrides never do.
func (u *FulfillmentUseCase) CancelOrder(ctx context.Context, orderID, actorID int64, actorRole model.Role) error {
	err := u.repos.WithinTransaction(ctx, func(ctx context.Context, tx repository.Factory) error {
		// Locked read: a concurrent cancel of the same order waits on the
		// row lock and then sees the cancelled status, so the release and
		// the counter increment below happen at most once.
		order, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if order.UserID != actorID && actorRole != model.RoleAdmin {
			return domainErrors.ErrUnauthorized
		}
		if order.Status == model.OrderStatusCancelled {
			return domainErrors.ErrAlreadyCancelled
		}

		products := tx.Products()
		for _, line := range order.Lines {
			if err := u.ledger.Release(ctx, products, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return err
		}

		if actorRole != model.RoleAdmin {
			count, err := tx.Users().IncrementCancelCount(ctx, order.UserID)
			if err != nil {
				return err
			}
			if count >= u.blockThreshold {
				if err := tx.Users().SetBlocked(ctx, order.UserID, true); err != nil {
					return err
				}
				u.logger.Warn("user blocked after repeated cancellations",
					slog.Int64("user_id", order.UserID),
					slog.Int64("cancel_count", count),
				)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.logger.Info("order cancelled",
		slog.Int64("order_id", orderID),
		slog.Int64("actor_id", actorID),
		slog.String("actor_role", string(actorRole)),
	)
	return nil
}

// Orders returns the user's orders sorted by creation time.
func (u *FulfillmentUseCase) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.repos.Orders().ListByUser(ctx, userID)
}
