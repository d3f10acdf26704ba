package model

// Product is a catalog entry with the authoritative stock counter.
// Stock is mutated only through the inventory ledger and never goes negative.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int64
}
