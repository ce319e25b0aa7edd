package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"tnrsteel/internal/domain"
)

type stubProducts struct {
	findAll func() ([]domain.Product, error)
}

func (s *stubProducts) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.findAll()
}

type stubStock struct {
	findAll func() ([]domain.StockItem, error)
}

func (s *stubStock) FindAll(ctx context.Context) ([]domain.StockItem, error) {
	return s.findAll()
}

type stubSales struct {
	findAll func() ([]domain.Sale, error)
}

func (s *stubSales) FindAll(ctx context.Context) ([]domain.Sale, error) {
	return s.findAll()
}

func emptyResponder() *Responder {
	return NewResponder(
		&stubProducts{findAll: func() ([]domain.Product, error) { return nil, nil }},
		&stubStock{findAll: func() ([]domain.StockItem, error) { return nil, nil }},
		&stubSales{findAll: func() ([]domain.Sale, error) { return nil, nil }},
		zap.NewNop(),
	)
}

func TestReply_EmptyMessage(t *testing.T) {
	r := emptyResponder()

	for _, msg := range []string{"", "   ", "\t\n"} {
		if got := r.Reply(context.Background(), msg); got != replyEmpty {
			t.Errorf("Reply(%q) = %q, want %q", msg, got, replyEmpty)
		}
	}
}

func TestReply_GreetingAndHelp(t *testing.T) {
	r := emptyResponder()

	cases := map[string]string{
		"hello":           replyGreeting,
		"Hi there":        replyGreeting,
		"HEY":             replyGreeting,
		"help":            replyHelp,
		"can you help me": replyHelp,
	}
	for msg, want := range cases {
		if got := r.Reply(context.Background(), msg); got != want {
			t.Errorf("Reply(%q) = %q, want %q", msg, got, want)
		}
	}
}

func TestReply_Fallback(t *testing.T) {
	r := emptyResponder()

	if got := r.Reply(context.Background(), "what is the meaning of life"); got != replyFallback {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestReply_ProductsListsAtMostFive(t *testing.T) {
	products := []domain.Product{
		{Name: "Rebar 10mm"}, {Name: "Rebar 12mm"}, {Name: "Angle Iron"},
		{Name: "Flat Bar"}, {Name: "Box Bar"}, {Name: "GI Pipe"},
	}
	r := emptyResponder()
	r.products = &stubProducts{findAll: func() ([]domain.Product, error) { return products, nil }}

	got := r.Reply(context.Background(), "show me the products")

	if !strings.HasPrefix(got, "Available Products:") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if strings.Contains(got, "GI Pipe") {
		t.Errorf("reply must cap at five entries: %q", got)
	}
	if !strings.Contains(got, "5. Box Bar") {
		t.Errorf("expected fifth entry, got %q", got)
	}
}

func TestReply_ProductsEmpty(t *testing.T) {
	r := emptyResponder()

	if got := r.Reply(context.Background(), "products"); got != "No products found in the system." {
		t.Errorf("got %q", got)
	}
}

func TestReply_StockLevels(t *testing.T) {
	r := emptyResponder()
	r.stock = &stubStock{findAll: func() ([]domain.StockItem, error) {
		return []domain.StockItem{{Name: "Rebar 12mm", Quantity: 80}}, nil
	}}

	got := r.Reply(context.Background(), "current stock please")

	if !strings.Contains(got, "Rebar 12mm -> 80") {
		t.Errorf("got %q", got)
	}
}

func TestReply_SalesToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	r := emptyResponder()
	r.now = func() time.Time { return now }
	r.sales = &stubSales{findAll: func() ([]domain.Sale, error) {
		return []domain.Sale{
			{TotalAmount: 1200.50, SaleDate: now.Add(-2 * time.Hour)},
			{TotalAmount: 800, SaleDate: now.Add(-3 * time.Hour)},
			{TotalAmount: 9999, SaleDate: now.Add(-48 * time.Hour)}, // yesterday's, excluded
		}, nil
	}}

	got := r.Reply(context.Background(), "sales today")

	if !strings.Contains(got, "Rs.2000.50") {
		t.Errorf("expected today's total only, got %q", got)
	}
	if !strings.Contains(got, "Transactions: 2") {
		t.Errorf("got %q", got)
	}
}

func TestReply_SalesTodayNone(t *testing.T) {
	r := emptyResponder()
	r.now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }

	if got := r.Reply(context.Background(), "daily sales"); got != "No sales recorded for today." {
		t.Errorf("got %q", got)
	}
}

func TestReply_LookupFailureFallsBack(t *testing.T) {
	r := emptyResponder()
	r.products = &stubProducts{findAll: func() ([]domain.Product, error) {
		return nil, errors.New("connection refused")
	}}

	if got := r.Reply(context.Background(), "products"); got != replyFallback {
		t.Errorf("got %q, want fallback", got)
	}
}
