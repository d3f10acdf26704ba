package model

// CartItem is a single cart line referencing a catalog product.
type CartItem struct {
	ProductID int64
	Quantity  int64
}

// Cart holds the pending purchase lines of one user. A cart exists from the
// first added item until it is consumed by order placement or emptied.
type Cart struct {
	UserID int64
	Items  []CartItem
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}
