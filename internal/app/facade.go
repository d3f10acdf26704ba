package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StorefrontFacade aggregates application use cases behind one surface
// consumed by the HTTP layer.
type StorefrontFacade struct {
	auth        *usecase.AuthUseCase
	catalog     *usecase.CatalogUseCase
	cart        *usecase.CartUseCase
	fulfillment *usecase.FulfillmentUseCase
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, cart *usecase.CartUseCase, fulfillment *usecase.FulfillmentUseCase) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, catalog: catalog, cart: cart, fulfillment: fulfillment}
}

func (f *StorefrontFacade) Register(ctx context.Context, name, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error) {
	return f.catalog.Create(ctx, name, description, price, stock)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Update(ctx, product)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *StorefrontFacade) AddCartItem(ctx context.Context, userID, productID, quantity int64) (*model.Cart, error) {
	return f.cart.AddItem(ctx, userID, productID, quantity)
}

func (f *StorefrontFacade) RemoveCartItem(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	return f.cart.RemoveItem(ctx, userID, productID)
}

func (f *StorefrontFacade) PlaceOrderFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	return f.fulfillment.PlaceOrderFromCart(ctx, userID)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.fulfillment.Orders(ctx, userID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, orderID, actorID int64, actorRole model.Role) error {
	return f.fulfillment.CancelOrder(ctx, orderID, actorID, actorRole)
}
