package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Sale struct {
	ID          uint
	InvoiceID   string
	BuyerID     string
	Items       []SaleLineItem
	TotalAmount float64
	SaleDate    time.Time
}

type SaleLineItem struct {
	ItemName string
	Quantity int
	Price    float64
	Total    float64
}

// ExpectedTotal recomputes quantity × price with exact decimal arithmetic.
func (li SaleLineItem) ExpectedTotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TotalMatches verifies the client-supplied line total against the
// recomputed value.
func (li SaleLineItem) TotalMatches() bool {
	return decimal.NewFromFloat(li.Total).Equal(li.ExpectedTotal())
}

// SumLineTotals is the exact sum of the supplied line totals, used to verify
// the declared grand total.
func SumLineTotals(items []SaleLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(decimal.NewFromFloat(li.Total))
	}
	return sum
}
