package test

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints and the
// auth middleware.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseTokenFn   func(string) (int64, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, name, email, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return "test-token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "test-token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Name: "user", Email: "user@example.com", Role: model.RoleCustomer}, nil
}

// CatalogFacadeStub provides controllable behaviour for product endpoints.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context) ([]model.Product, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	CreateProductFn func(context.Context, string, string, float64, int64) (*model.Product, error)
	UpdateProductFn func(context.Context, *model.Product) (*model.Product, error)
	DeleteProductFn func(context.Context, int64) error
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "product", Price: 1, Stock: 1}, nil
}

func (s CatalogFacadeStub) CreateProduct(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, name, description, price, stock)
	}
	return &model.Product{ID: 1, Name: name, Description: description, Price: price, Stock: stock}, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return product, nil
}

func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	CartFn       func(context.Context, int64) (*model.Cart, error)
	AddItemFn    func(context.Context, int64, int64, int64) (*model.Cart, error)
	RemoveItemFn func(context.Context, int64, int64) (*model.Cart, error)
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{UserID: userID}, nil
}

func (s CartFacadeStub) AddCartItem(ctx context.Context, userID, productID, quantity int64) (*model.Cart, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{{ProductID: productID, Quantity: quantity}}}, nil
}

func (s CartFacadeStub) RemoveCartItem(ctx context.Context, userID, productID int64) (*model.Cart, error) {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, productID)
	}
	return &model.Cart{UserID: userID}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, int64) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	CancelFn func(context.Context, int64, int64, model.Role) error
}

func (s OrderFacadeStub) PlaceOrderFromCart(ctx context.Context, userID int64) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID, actorID int64, actorRole model.Role) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID, actorID, actorRole)
	}
	return nil
}

// FacadeStub aggregates the stubs into a full storefront facade.
type FacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
}
