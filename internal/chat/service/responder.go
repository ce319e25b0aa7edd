package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tnrsteel/internal/domain"
)

type ProductsRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type StockRepository interface {
	FindAll(ctx context.Context) ([]domain.StockItem, error)
}

type SalesRepository interface {
	FindAll(ctx context.Context) ([]domain.Sale, error)
}

// Responder answers the dashboard chat box with keyword-matched replies
// built from live data. It is intentionally not a search engine: first rule
// whose keywords appear in the message wins.
type Responder struct {
	products ProductsRepository
	stock    StockRepository
	sales    SalesRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewResponder(
	products ProductsRepository,
	stock StockRepository,
	sales SalesRepository,
	logger *zap.Logger,
) *Responder {
	return &Responder{
		products: products,
		stock:    stock,
		sales:    sales,
		logger:   logger,
		now:      time.Now,
	}
}

const (
	replyEmpty    = "Please type a message first."
	replyFallback = "Sorry, I don't understand. Type 'help' to see options."
	replyHelp     = "You can ask about: products, stock, sales today, help."
	replyGreeting = "Hello! How can I assist you with TNR Steel today?"
)

func includesAny(msg string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func (r *Responder) Reply(ctx context.Context, message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return replyEmpty
	}

	switch {
	case includesAny(msg, "hello", "hi", "hey"):
		return replyGreeting
	case includesAny(msg, "help"):
		return replyHelp
	case includesAny(msg, "products", "list products", "available products"):
		return r.productsReply(ctx)
	case includesAny(msg, "stock", "available stock", "inventory"):
		return r.stockReply(ctx)
	case includesAny(msg, "sales today", "today sales", "daily sales"):
		return r.salesTodayReply(ctx)
	default:
		return replyFallback
	}
}

func (r *Responder) productsReply(ctx context.Context) string {
	products, err := r.products.FindAll(ctx)
	if err != nil {
		r.logger.Error("chat products lookup failed", zap.Error(err))
		return replyFallback
	}
	if len(products) == 0 {
		return "No products found in the system."
	}

	if len(products) > 5 {
		products = products[:5]
	}

	var b strings.Builder
	b.WriteString("Available Products:\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) stockReply(ctx context.Context) string {
	items, err := r.stock.FindAll(ctx)
	if err != nil {
		r.logger.Error("chat stock lookup failed", zap.Error(err))
		return replyFallback
	}
	if len(items) == 0 {
		return "No stock data available."
	}

	if len(items) > 5 {
		items = items[:5]
	}

	var b strings.Builder
	b.WriteString("Stock Levels:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s -> %d\n", i+1, item.Name, item.Quantity)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) salesTodayReply(ctx context.Context) string {
	sales, err := r.sales.FindAll(ctx)
	if err != nil {
		r.logger.Error("chat sales lookup failed", zap.Error(err))
		return replyFallback
	}

	dayStart := r.now().UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	total := 0.0
	count := 0
	for _, s := range sales {
		if !s.SaleDate.Before(dayStart) && s.SaleDate.Before(dayEnd) {
			total += s.TotalAmount
			count++
		}
	}

	if count == 0 {
		return "No sales recorded for today."
	}
	return fmt.Sprintf("Sales Today:\n- Total Amount: Rs.%.2f\n- Transactions: %d", total, count)
}
