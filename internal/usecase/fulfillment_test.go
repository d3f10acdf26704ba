package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/ledger"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func newFulfillment(factory *testhelpers.FactoryStub, threshold int64) *FulfillmentUseCase {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewFulfillmentUseCase(factory, ledger.New(logger), threshold, logger)
}

func TestPlaceOrderFromCartSuccess(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 5})
	b := factory.SeedProduct(model.Product{Name: "B", Price: 3.5, Stock: 2})
	factory.SeedCart(user.ID,
		model.CartItem{ProductID: a.ID, Quantity: 2},
		model.CartItem{ProductID: b.ID, Quantity: 2},
	)
	uc := newFulfillment(factory, 3)

	order, err := uc.PlaceOrderFromCart(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %q", order.Status)
	}
	if order.Total != 27 {
		t.Fatalf("expected total 27, got %v", order.Total)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
	if order.Lines[0].Price != 10 || order.Lines[1].Price != 3.5 {
		t.Fatalf("expected captured prices, got %+v", order.Lines)
	}
	if factory.ProductsByID[a.ID].Stock != 3 {
		t.Fatalf("expected stock 3 for product A, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if factory.ProductsByID[b.ID].Stock != 0 {
		t.Fatalf("expected stock 0 for product B, got %d", factory.ProductsByID[b.ID].Stock)
	}
	if _, ok := factory.CartsByUser[user.ID]; ok {
		t.Fatalf("cart must not survive a successful placement")
	}
	if _, ok := factory.OrdersByID[order.ID]; !ok {
		t.Fatalf("order not persisted")
	}
}

func TestPlaceOrderFromCartEmptyCart(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	uc := newFulfillment(factory, 3)

	if _, err := uc.PlaceOrderFromCart(context.Background(), user.ID); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(factory.OrdersByID) != 0 {
		t.Fatalf("no order should be created for empty cart")
	}
}

func TestPlaceOrderFromCartBlockedUser(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com", Blocked: true})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 5})
	factory.SeedCart(user.ID, model.CartItem{ProductID: a.ID, Quantity: 1})
	uc := newFulfillment(factory, 3)

	if _, err := uc.PlaceOrderFromCart(context.Background(), user.ID); !errors.Is(err, domainErrors.ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}
	if factory.ProductsByID[a.ID].Stock != 5 {
		t.Fatalf("stock must not change, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if len(factory.OrdersByID) != 0 {
		t.Fatalf("no order should be created")
	}
}

func TestPlaceOrderFromCartInsufficientStock(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 5})
	b := factory.SeedProduct(model.Product{Name: "B", Price: 3.5, Stock: 1})
	factory.SeedCart(user.ID,
		model.CartItem{ProductID: a.ID, Quantity: 2},
		model.CartItem{ProductID: b.ID, Quantity: 2},
	)
	uc := newFulfillment(factory, 3)

	_, err := uc.PlaceOrderFromCart(context.Background(), user.ID)
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	// First line was reserved inside the transaction; the rollback must undo it.
	if factory.ProductsByID[a.ID].Stock != 5 {
		t.Fatalf("expected stock 5 after rollback, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if factory.ProductsByID[b.ID].Stock != 1 {
		t.Fatalf("expected stock 1 after rollback, got %d", factory.ProductsByID[b.ID].Stock)
	}
	if len(factory.OrdersByID) != 0 {
		t.Fatalf("no order should be created")
	}
	if len(factory.CartsByUser[user.ID]) != 2 {
		t.Fatalf("cart must survive a failed placement")
	}
}

func TestPlaceOrderFromCartVanishedProduct(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 5})
	factory.SeedCart(user.ID,
		model.CartItem{ProductID: a.ID, Quantity: 1},
		model.CartItem{ProductID: 999, Quantity: 1},
	)
	uc := newFulfillment(factory, 3)

	_, err := uc.PlaceOrderFromCart(context.Background(), user.ID)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if factory.ProductsByID[a.ID].Stock != 5 {
		t.Fatalf("expected no partial decrement, got stock %d", factory.ProductsByID[a.ID].Stock)
	}
	if len(factory.OrdersByID) != 0 {
		t.Fatalf("no order should be created")
	}
}

func TestPlaceOrderFromCartCommitFailure(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 5})
	factory.SeedCart(user.ID, model.CartItem{ProductID: a.ID, Quantity: 2})
	factory.CommitErr = fmt.Errorf("commit failed")
	uc := newFulfillment(factory, 3)

	if _, err := uc.PlaceOrderFromCart(context.Background(), user.ID); err == nil {
		t.Fatal("expected commit error")
	}
	if factory.ProductsByID[a.ID].Stock != 5 {
		t.Fatalf("expected stock restored after commit failure, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if len(factory.OrdersByID) != 0 {
		t.Fatalf("order must not survive commit failure")
	}
	if len(factory.CartsByUser[user.ID]) != 1 {
		t.Fatalf("cart must survive commit failure")
	}
}

func TestCancelOrderByOwner(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 2, Price: 10}},
		Total:  20,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if factory.OrdersByID[order.ID].Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", factory.OrdersByID[order.ID].Status)
	}
	if factory.ProductsByID[a.ID].Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if factory.UsersByID[user.ID].CancelCount != 1 {
		t.Fatalf("expected cancel count 1, got %d", factory.UsersByID[user.ID].CancelCount)
	}
	if factory.UsersByID[user.ID].Blocked {
		t.Fatalf("user must not be blocked below threshold")
	}
}

func TestCancelOrderNotFound(t *testing.T) {
	uc := newFulfillment(testhelpers.NewFactoryStub(), 3)
	if err := uc.CancelOrder(context.Background(), 999, 1, model.RoleCustomer); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelOrderForeignOrder(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	owner := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	stranger := factory.SeedUser(model.User{Name: "Mallory", Email: "mallory@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: owner.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 1, Price: 10}},
		Total:  10,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, stranger.ID, model.RoleCustomer); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if factory.OrdersByID[order.ID].Status != model.OrderStatusPending {
		t.Fatalf("order must stay pending, got %q", factory.OrdersByID[order.ID].Status)
	}
	if factory.ProductsByID[a.ID].Stock != 3 {
		t.Fatalf("stock must not change, got %d", factory.ProductsByID[a.ID].Stock)
	}
}

func TestCancelOrderAlreadyCancelled(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 2, Price: 10}},
		Total:  20,
		Status: model.OrderStatusCancelled,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); !errors.Is(err, domainErrors.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if factory.ProductsByID[a.ID].Stock != 3 {
		t.Fatalf("stock must not be restored twice, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if factory.UsersByID[user.ID].CancelCount != 0 {
		t.Fatalf("rejected cancellation must not count, got %d", factory.UsersByID[user.ID].CancelCount)
	}
}

func TestCancelOrderSecondCancelReleasesNothing(t *testing.T) {
	// Two cancels of the same order: the row lock taken by the order read
	// serializes them, so the loser sees the cancelled status and must not
	// release stock or bump the counter again.
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 2, Price: 10}},
		Total:  20,
		Status: model.OrderStatusPending,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); !errors.Is(err, domainErrors.ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if got := factory.ProductsByID[a.ID].Stock; got != 5 {
		t.Fatalf("stock released twice: got %d, want 5", got)
	}
	if got := factory.UsersByID[user.ID].CancelCount; got != 1 {
		t.Fatalf("counter incremented twice: got %d, want 1", got)
	}
	if factory.UsersByID[user.ID].Blocked {
		t.Fatal("user must not be blocked after one cancellation")
	}
}

func TestCancelOrderMissingProductSkipped(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines: []model.OrderLine{
			{ProductID: a.ID, Quantity: 1, Price: 10},
			{ProductID: 999, Quantity: 2, Price: 4},
		},
		Total: 18,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); err != nil {
		t.Fatalf("cancel with deleted product must succeed, got %v", err)
	}
	if factory.OrdersByID[order.ID].Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", factory.OrdersByID[order.ID].Status)
	}
	if factory.ProductsByID[a.ID].Stock != 4 {
		t.Fatalf("surviving product must be restored, got %d", factory.ProductsByID[a.ID].Stock)
	}
}

func TestCancelOrderBlocksAtThreshold(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com", CancelCount: 2})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 10})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 1, Price: 10}},
		Total:  10,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if factory.UsersByID[user.ID].CancelCount != 3 {
		t.Fatalf("expected cancel count 3, got %d", factory.UsersByID[user.ID].CancelCount)
	}
	if !factory.UsersByID[user.ID].Blocked {
		t.Fatalf("user must be blocked at threshold")
	}
}

func TestCancelOrderByAdminDoesNotCount(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com", CancelCount: 2})
	admin := factory.SeedUser(model.User{Name: "Root", Email: "root@example.com", Role: model.RoleAdmin})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 10})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 1, Price: 10}},
		Total:  10,
	})
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, admin.ID, model.RoleAdmin); err != nil {
		t.Fatalf("admin cancel returned error: %v", err)
	}
	if factory.OrdersByID[order.ID].Status != model.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", factory.OrdersByID[order.ID].Status)
	}
	if factory.UsersByID[user.ID].CancelCount != 2 {
		t.Fatalf("admin cancellation must not count, got %d", factory.UsersByID[user.ID].CancelCount)
	}
	if factory.UsersByID[user.ID].Blocked {
		t.Fatalf("admin cancellation must not block the owner")
	}
}

func TestCancelOrderCommitFailure(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	a := factory.SeedProduct(model.Product{Name: "A", Price: 10, Stock: 3})
	order := factory.SeedOrder(model.Order{
		UserID: user.ID,
		Lines:  []model.OrderLine{{ProductID: a.ID, Quantity: 2, Price: 10}},
		Total:  20,
	})
	factory.CommitErr = fmt.Errorf("commit failed")
	uc := newFulfillment(factory, 3)

	if err := uc.CancelOrder(context.Background(), order.ID, user.ID, model.RoleCustomer); err == nil {
		t.Fatal("expected commit error")
	}
	if factory.OrdersByID[order.ID].Status != model.OrderStatusPending {
		t.Fatalf("order must stay pending after commit failure, got %q", factory.OrdersByID[order.ID].Status)
	}
	if factory.ProductsByID[a.ID].Stock != 3 {
		t.Fatalf("stock must be restored after commit failure, got %d", factory.ProductsByID[a.ID].Stock)
	}
	if factory.UsersByID[user.ID].CancelCount != 0 {
		t.Fatalf("cancel count must be restored after commit failure, got %d", factory.UsersByID[user.ID].CancelCount)
	}
}

func TestOrdersListsUserOrders(t *testing.T) {
	factory := testhelpers.NewFactoryStub()
	user := factory.SeedUser(model.User{Name: "Alice", Email: "alice@example.com"})
	other := factory.SeedUser(model.User{Name: "Bob", Email: "bob@example.com"})
	factory.SeedOrder(model.Order{UserID: user.ID, Total: 10})
	factory.SeedOrder(model.Order{UserID: other.ID, Total: 5})
	factory.SeedOrder(model.Order{UserID: user.ID, Total: 7})
	uc := newFulfillment(factory, 3)

	orders, err := uc.Orders(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("orders returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Total != 7 || orders[1].Total != 10 {
		t.Fatalf("expected newest first, got %+v", orders)
	}
}
