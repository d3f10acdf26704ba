package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// querier is the query surface shared by the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository factory backed by PostgreSQL. It implements
// repository.Factory: repositories obtained from it auto-commit, while
// WithinTransaction yields a factory whose repositories share one transaction.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{db: s.pool}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{db: s.pool}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{db: s.pool}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{db: s.pool}
}

// WithinTransaction executes fn against a tx-scoped repository factory. The
// transaction commits when fn returns nil and rolls back otherwise, so every
// repository write issued through the scoped factory is discarded together.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Factory) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(ctx, &txFactory{tx: tx})
	return err
}

// txFactory hands out repositories bound to one open transaction.
type txFactory struct {
	tx pgx.Tx
}

func (f *txFactory) Users() repository.UserRepository {
	return &userRepository{db: f.tx}
}

func (f *txFactory) Products() repository.ProductRepository {
	return &productRepository{db: f.tx}
}

func (f *txFactory) Carts() repository.CartRepository {
	return &cartRepository{db: f.tx}
}

func (f *txFactory) Orders() repository.OrderRepository {
	return &orderRepository{db: f.tx}
}

// WithinTransaction on a tx scope joins the enclosing transaction.
func (f *txFactory) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Factory) error) error {
	return fn(ctx, f)
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            cancel_count BIGINT NOT NULL DEFAULT 0,
            blocked BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            stock BIGINT NOT NULL CHECK (stock >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            user_id BIGINT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL,
            quantity BIGINT NOT NULL CHECK (quantity > 0),
            PRIMARY KEY (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            total DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL,
            quantity BIGINT NOT NULL,
            price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

type userRepository struct {
	db querier
}

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.db.QueryRow(ctx, query, name, email, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, role, cancel_count, blocked, created_at FROM users WHERE email=$1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, role, cancel_count, blocked, created_at FROM users WHERE id=$1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CancelCount, &u.Blocked, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) IncrementCancelCount(ctx context.Context, id int64) (int64, error) {
	const query = `UPDATE users SET cancel_count = cancel_count + 1 WHERE id=$1 RETURNING cancel_count`
	var count int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	const query = `UPDATE users SET blocked=$2 WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id, blocked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

type productRepository struct {
	db querier
}

func (r *productRepository) Create(ctx context.Context, name, description string, price float64, stock int64) (*model.Product, error) {
	const query = `INSERT INTO products (name, description, price, stock) VALUES ($1, $2, $3, $4) RETURNING id`
	p := model.Product{Name: name, Description: description, Price: price, Stock: stock}
	if err := r.db.QueryRow(ctx, query, name, description, price, stock).Scan(&p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `UPDATE products SET name=$2, description=$3, price=$4, stock=$5 WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Description, product.Price, product.Stock)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, description, price, stock FROM products WHERE id=$1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate locks the product row for the rest of the enclosing transaction.
// Concurrent reservations of the same product serialize on this lock, which is
// what prevents two placements from jointly overdrawing stock.
func (r *productRepository) GetForUpdate(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, description, price, stock FROM products WHERE id=$1 FOR UPDATE`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, name, description, price, stock FROM products ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustStock applies a signed delta to the stock counter. The table CHECK
// constraint backs the ledger's non-negativity rule.
func (r *productRepository) AdjustStock(ctx context.Context, id int64, delta int64) error {
	const query = `UPDATE products SET stock = stock + $2 WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CartRepository implementation ---

type cartRepository struct {
	db querier
}

func (r *cartRepository) GetByUser(ctx context.Context, userID int64) (*model.Cart, error) {
	const query = `SELECT product_id, quantity FROM cart_items WHERE user_id=$1 ORDER BY product_id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := model.Cart{UserID: userID}
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID, quantity int64) error {
	const query = `INSERT INTO cart_items (user_id, product_id, quantity)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (user_id, product_id) DO UPDATE
                   SET quantity = cart_items.quantity + EXCLUDED.quantity`
	_, err := r.db.Exec(ctx, query, userID, productID, quantity)
	return err
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`
	_, err := r.db.Exec(ctx, query, userID, productID)
	return err
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id=$1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

// --- OrderRepository implementation ---

type orderRepository struct {
	db querier
}

func (r *orderRepository) Create(ctx context.Context, userID int64, lines []model.OrderLine, total float64) (*model.Order, error) {
	const insertOrder = `INSERT INTO orders (user_id, total, status) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	order := model.Order{UserID: userID, Total: total, Status: model.OrderStatusPending}
	err := r.db.QueryRow(ctx, insertOrder, userID, total, model.OrderStatusPending).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	const insertLine = `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`
	for _, line := range lines {
		if _, err := r.db.Exec(ctx, insertLine, order.ID, line.ProductID, line.Quantity, line.Price); err != nil {
			return nil, err
		}
	}
	order.Lines = lines
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, user_id, total, status, created_at, updated_at FROM orders WHERE id=$1`
	var o model.Order
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// GetForUpdate locks the order row until the enclosing transaction ends. A
// concurrent cancellation of the same order waits here and then observes the
// committed status, so stock release and the cancel counter apply once.
func (r *orderRepository) GetForUpdate(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, user_id, total, status, created_at, updated_at FROM orders WHERE id=$1 FOR UPDATE`
	var o model.Order
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.loadLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, user_id, total, status, created_at, updated_at
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.loadLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT product_id, quantity, price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
