package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CartUseCase manages cart mutation. The stock comparison here is a courtesy
// pre-check against the current counter; the authoritative check happens under
// lock inside order placement.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// AddItem puts quantity units of a product into the user's cart, creating the
// cart on first use, and returns the resulting cart.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID, quantity int64) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, fmt.Errorf("product %d: %w", productID, domainErrors.ErrInsufficientStock)
	}

	if err := u.carts.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return u.carts.GetByUser(ctx, userID)
}

// RemoveItem deletes a product line from the user's cart and returns the
// remaining cart, which may be empty.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	if _, err := u.carts.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := u.carts.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}

	cart, err := u.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

// Get returns the user's cart or ErrNotFound when none exists.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	return u.carts.GetByUser(ctx, userID)
}
