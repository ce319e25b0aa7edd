package domain

import "time"

// Material is a raw-material lot purchased from a supplier.
type Material struct {
	ID           uint
	InvoiceID    string
	Name         string
	SupplierName string
	Quantity     int
	LotPrice     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Product is a finished-goods stock row, issued to the indirect-sales
// channel before it can be sold.
type Product struct {
	ID        uint
	Name      string
	Quantity  int
	UnitPrice float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Buyer struct {
	ID        uint
	Name      string
	Company   string
	Email     string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
