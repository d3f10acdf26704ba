package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// FactoryStub is an in-memory repository.Factory. WithinTransaction snapshots
// the whole state before running fn and restores it when fn fails, so tests
// can assert all-or-nothing semantics without a database.
type FactoryStub struct {
	UsersByID    map[int64]*model.User
	ProductsByID map[int64]*model.Product
	CartsByUser  map[int64][]model.CartItem
	OrdersByID   map[int64]*model.Order

	NextUserID    int64
	NextProductID int64
	NextOrderID   int64

	BeginErr  error
	CommitErr error
}

// NewFactoryStub constructs an empty in-memory factory.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{
		UsersByID:     make(map[int64]*model.User),
		ProductsByID:  make(map[int64]*model.Product),
		CartsByUser:   make(map[int64][]model.CartItem),
		OrdersByID:    make(map[int64]*model.Order),
		NextUserID:    1,
		NextProductID: 1,
		NextOrderID:   1,
	}
}

// SeedUser stores a user and returns it.
func (f *FactoryStub) SeedUser(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = f.NextUserID
		f.NextUserID++
	} else if u.ID >= f.NextUserID {
		f.NextUserID = u.ID + 1
	}
	stored := u
	f.UsersByID[u.ID] = &stored
	return &stored
}

// SeedProduct stores a product and returns it.
func (f *FactoryStub) SeedProduct(p model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = f.NextProductID
		f.NextProductID++
	} else if p.ID >= f.NextProductID {
		f.NextProductID = p.ID + 1
	}
	stored := p
	f.ProductsByID[p.ID] = &stored
	return &stored
}

// SeedCart replaces the user's cart lines.
func (f *FactoryStub) SeedCart(userID int64, items ...model.CartItem) {
	f.CartsByUser[userID] = append([]model.CartItem(nil), items...)
}

// SeedOrder stores an order and returns it.
func (f *FactoryStub) SeedOrder(o model.Order) *model.Order {
	if o.ID == 0 {
		o.ID = f.NextOrderID
		f.NextOrderID++
	} else if o.ID >= f.NextOrderID {
		f.NextOrderID = o.ID + 1
	}
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	stored := o
	stored.Lines = append([]model.OrderLine(nil), o.Lines...)
	f.OrdersByID[o.ID] = &stored
	return &stored
}

func (f *FactoryStub) Users() repository.UserRepository       { return &stubUserRepo{f} }
func (f *FactoryStub) Products() repository.ProductRepository { return &stubProductRepo{f} }
func (f *FactoryStub) Carts() repository.CartRepository       { return &stubCartRepo{f} }
func (f *FactoryStub) Orders() repository.OrderRepository     { return &stubOrderRepo{f} }

// WithinTransaction runs fn against the same factory, rolling the state back
// to the pre-transaction snapshot when fn (or the simulated commit) fails.
func (f *FactoryStub) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Factory) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	snap := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.restore(snap)
		return err
	}
	if f.CommitErr != nil {
		f.restore(snap)
		return f.CommitErr
	}
	return nil
}

type factorySnapshot struct {
	users    map[int64]*model.User
	products map[int64]*model.Product
	carts    map[int64][]model.CartItem
	orders   map[int64]*model.Order

	nextUser, nextProduct, nextOrder int64
}

func (f *FactoryStub) snapshot() factorySnapshot {
	snap := factorySnapshot{
		users:       make(map[int64]*model.User, len(f.UsersByID)),
		products:    make(map[int64]*model.Product, len(f.ProductsByID)),
		carts:       make(map[int64][]model.CartItem, len(f.CartsByUser)),
		orders:      make(map[int64]*model.Order, len(f.OrdersByID)),
		nextUser:    f.NextUserID,
		nextProduct: f.NextProductID,
		nextOrder:   f.NextOrderID,
	}
	for id, u := range f.UsersByID {
		clone := *u
		snap.users[id] = &clone
	}
	for id, p := range f.ProductsByID {
		clone := *p
		snap.products[id] = &clone
	}
	for id, items := range f.CartsByUser {
		snap.carts[id] = append([]model.CartItem(nil), items...)
	}
	for id, o := range f.OrdersByID {
		clone := *o
		clone.Lines = append([]model.OrderLine(nil), o.Lines...)
		snap.orders[id] = &clone
	}
	return snap
}

func (f *FactoryStub) restore(snap factorySnapshot) {
	f.UsersByID = snap.users
	f.ProductsByID = snap.products
	f.CartsByUser = snap.carts
	f.OrdersByID = snap.orders
	f.NextUserID = snap.nextUser
	f.NextProductID = snap.nextProduct
	f.NextOrderID = snap.nextOrder
}

// --- user repository ---

type stubUserRepo struct{ f *FactoryStub }

func (r *stubUserRepo) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	for _, u := range r.f.UsersByID {
		if strings.EqualFold(u.Email, email) {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	user := r.f.SeedUser(model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	})
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.f.UsersByID {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.f.UsersByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) IncrementCancelCount(ctx context.Context, id int64) (int64, error) {
	u, ok := r.f.UsersByID[id]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	u.CancelCount++
	return u.CancelCount, nil
}

func (r *stubUserRepo) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	u, ok := r.f.UsersByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u.Blocked = blocked
	return nil
}

// --- product repository ---

type stubProductRepo struct{ f *FactoryStub }

func (r *stubProductRepo) Create(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error) {
	product := r.f.SeedProduct(model.Product{Name: name, Description: description, Price: price, Stock: stock})
	clone := *product
	return &clone, nil
}

func (r *stubProductRepo) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if _, ok := r.f.ProductsByID[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	stored := *product
	r.f.ProductsByID[product.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.f.ProductsByID[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(r.f.ProductsByID, id)
	return nil
}

func (r *stubProductRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	p, ok := r.f.ProductsByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(ctx context.Context) ([]model.Product, error) {
	ids := make([]int64, 0, len(r.f.ProductsByID))
	for id := range r.f.ProductsByID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		result = append(result, *r.f.ProductsByID[id])
	}
	return result, nil
}

func (r *stubProductRepo) GetForUpdate(ctx context.Context, id int64) (*model.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *stubProductRepo) AdjustStock(ctx context.Context, id, delta int64) error {
	p, ok := r.f.ProductsByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return fmt.Errorf("stock constraint violated for product %d", id)
	}
	p.Stock += delta
	return nil
}

// --- cart repository ---

type stubCartRepo struct{ f *FactoryStub }

func (r *stubCartRepo) GetByUser(ctx context.Context, userID int64) (*model.Cart, error) {
	items, ok := r.f.CartsByUser[userID]
	if !ok || len(items) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Cart{UserID: userID, Items: append([]model.CartItem(nil), items...)}, nil
}

func (r *stubCartRepo) AddItem(ctx context.Context, userID, productID, quantity int64) error {
	items := r.f.CartsByUser[userID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			r.f.CartsByUser[userID] = items
			return nil
		}
	}
	r.f.CartsByUser[userID] = append(items, model.CartItem{ProductID: productID, Quantity: quantity})
	return nil
}

func (r *stubCartRepo) RemoveItem(ctx context.Context, userID, productID int64) error {
	items := r.f.CartsByUser[userID]
	filtered := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		delete(r.f.CartsByUser, userID)
		return nil
	}
	r.f.CartsByUser[userID] = filtered
	return nil
}

func (r *stubCartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	delete(r.f.CartsByUser, userID)
	return nil
}

// --- order repository ---

type stubOrderRepo struct{ f *FactoryStub }

func (r *stubOrderRepo) Create(ctx context.Context, userID int64, lines []model.OrderLine, total float64) (*model.Order, error) {
	order := r.f.SeedOrder(model.Order{
		UserID:    userID,
		Lines:     append([]model.OrderLine(nil), lines...),
		Total:     total,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	clone := *order
	clone.Lines = append([]model.OrderLine(nil), order.Lines...)
	return &clone, nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	o, ok := r.f.OrdersByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *o
	clone.Lines = append([]model.OrderLine(nil), o.Lines...)
	return &clone, nil
}

func (r *stubOrderRepo) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *stubOrderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	ids := make([]int64, 0, len(r.f.OrdersByID))
	for id, o := range r.f.OrdersByID {
		if o.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	result := make([]model.Order, 0, len(ids))
	for _, id := range ids {
		o := r.f.OrdersByID[id]
		clone := *o
		clone.Lines = append([]model.OrderLine(nil), o.Lines...)
		result = append(result, clone)
	}
	return result, nil
}

func (r *stubOrderRepo) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	o, ok := r.f.OrdersByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}
