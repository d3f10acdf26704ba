package dto

import "time"

// OrderLineResponse describes a purchased line with its captured price.
type OrderLineResponse struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse describes an order snapshot.
type OrderResponse struct {
	ID        int64               `json:"id"`
	Total     float64             `json:"total"`
	Status    string              `json:"status"`
	Lines     []OrderLineResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}
