package dto

import (
	"time"

	"tnrsteel/internal/domain"
)

// CheckoutRequest is the indirect-sale order body as submitted by the
// sales-point client.
type CheckoutRequest struct {
	BuyerID     string             `json:"buyerId"`
	Items       []CheckoutLineItem `json:"items"`
	TotalAmount *float64           `json:"totalAmount"`
}

type CheckoutLineItem struct {
	ItemName string   `json:"itemName"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price"`
	Total    *float64 `json:"total"`
}

// StockApplyStatus reports how the post-commit decrement pass went.
type StockApplyStatus string

const (
	StockApplied StockApplyStatus = "applied"
	StockPartial StockApplyStatus = "partial"
)

// CheckoutResult is what the workflow hands back to the controller: the
// persisted sale plus the outcome of the decrement pass.
type CheckoutResult struct {
	Sale          SaleDTO
	StockStatus   StockApplyStatus
	StockWarnings []string
}

type SaleDTO struct {
	InvoiceID   string        `json:"invoiceId"`
	BuyerID     string        `json:"buyerId"`
	Items       []SaleItemDTO `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	Date        time.Time     `json:"date"`
}

type SaleItemDTO struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

func NewSaleDTO(sale domain.Sale) SaleDTO {
	items := make([]SaleItemDTO, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemDTO{
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		}
	}
	return SaleDTO{
		InvoiceID:   sale.InvoiceID,
		BuyerID:     sale.BuyerID,
		Items:       items,
		TotalAmount: sale.TotalAmount,
		Date:        sale.SaleDate,
	}
}
