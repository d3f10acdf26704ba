package model

import "time"

// OrderStatus describes the order lifecycle. The fulfillment engine only ever
// performs the one-way transition into cancelled.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderLine is an immutable purchase line. Price is the catalog price captured
// at placement time and is never recomputed from the live catalog.
type OrderLine struct {
	ProductID int64
	Quantity  int64
	Price     float64
}

// Order is an immutable snapshot of a purchase. Only Status and UpdatedAt
// change after creation.
type Order struct {
	ID        int64
	UserID    int64
	Lines     []OrderLine
	Total     float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
