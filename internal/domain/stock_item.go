package domain

import "time"

// StockItem is one indirect-sales stock keeping unit. The display name is
// the only lookup key; there is no canonical ID used for matching.
type StockItem struct {
	ID        int
	Name      string
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockAvailability is the (name, quantity) pair reported to clients when a
// requested item cannot be resolved.
type StockAvailability struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
