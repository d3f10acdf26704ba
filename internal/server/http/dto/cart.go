package dto

// CartItemRequest describes add-to-cart payload.
type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CartItemResponse describes a single cart line.
type CartItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// CartResponse describes the user's cart.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}
