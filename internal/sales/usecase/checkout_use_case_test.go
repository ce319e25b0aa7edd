package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/domain"
	"tnrsteel/internal/dto"
	apperrors "tnrsteel/internal/errors"
	"tnrsteel/internal/inventory/resolver"
)

func floatPtr(f float64) *float64 {
	return &f
}

// Mock implementations

type mockCheckoutService struct {
	PersistAndApplyFunc func(ctx context.Context, buyerID string, items []domain.SaleLineItem, totalAmount float64) (*dto.CheckoutResult, error)
	calls               int
}

func (m *mockCheckoutService) PersistAndApply(ctx context.Context, buyerID string, items []domain.SaleLineItem, totalAmount float64) (*dto.CheckoutResult, error) {
	m.calls++
	return m.PersistAndApplyFunc(ctx, buyerID, items, totalAmount)
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, name string) (*domain.StockItem, error)
}

func (m *mockResolver) Resolve(ctx context.Context, name string) (*domain.StockItem, error) {
	return m.ResolveFunc(ctx, name)
}

type mockSalesRepository struct {
	FindAllFunc         func(ctx context.Context) ([]domain.Sale, error)
	FindByInvoiceIDFunc func(ctx context.Context, invoiceID string) (*domain.Sale, error)
}

func (m *mockSalesRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockSalesRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Sale, error) {
	return m.FindByInvoiceIDFunc(ctx, invoiceID)
}

func newTestUseCase(svc CheckoutService, res StockResolver, repo SalesRepository) *CheckoutUseCase {
	return NewCheckoutUseCase(svc, res, repo, zap.NewNop())
}

func passthroughService() *mockCheckoutService {
	return &mockCheckoutService{
		PersistAndApplyFunc: func(ctx context.Context, buyerID string, items []domain.SaleLineItem, totalAmount float64) (*dto.CheckoutResult, error) {
			return &dto.CheckoutResult{
				Sale: dto.NewSaleDTO(domain.Sale{
					InvoiceID:   "INV-1-1",
					BuyerID:     buyerID,
					Items:       items,
					TotalAmount: totalAmount,
					SaleDate:    time.Now().UTC(),
				}),
				StockStatus: dto.StockApplied,
			}, nil
		},
	}
}

func rebarResolver(quantity int) *mockResolver {
	return &mockResolver{
		ResolveFunc: func(ctx context.Context, name string) (*domain.StockItem, error) {
			return &domain.StockItem{ID: 1, Name: "Rebar 10mm", Quantity: quantity}, nil
		},
	}
}

func validRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		BuyerID: "B1",
		Items: []dto.CheckoutLineItem{
			{ItemName: "Rebar 10mm", Quantity: 3, Price: floatPtr(100), Total: floatPtr(300)},
		},
		TotalAmount: floatPtr(300),
	}
}

// Tests

func TestCheckout_Success(t *testing.T) {
	svc := passthroughService()
	uc := newTestUseCase(svc, rebarResolver(5), &mockSalesRepository{})

	result, err := uc.Checkout(context.Background(), auth.Actor{ID: "sp-1"}, validRequest())

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.Sale.TotalAmount != 300 {
		t.Errorf("expected totalAmount 300, got %v", result.Sale.TotalAmount)
	}
	if result.Sale.BuyerID != "B1" {
		t.Errorf("expected buyerId B1, got %q", result.Sale.BuyerID)
	}
	if svc.calls != 1 {
		t.Errorf("expected one persist call, got %d", svc.calls)
	}
}

func TestCheckout_MissingBuyer(t *testing.T) {
	svc := passthroughService()
	uc := newTestUseCase(svc, rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.BuyerID = "  "

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Buyer ID is required" {
		t.Errorf("unexpected message: %q", ve.Message)
	}
	if svc.calls != 0 {
		t.Error("persist must not run for invalid input")
	}
}

func TestCheckout_EmptyItems(t *testing.T) {
	svc := passthroughService()
	uc := newTestUseCase(svc, rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.Items = nil

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Valid items array is required" {
		t.Errorf("unexpected message: %q", ve.Message)
	}
}

func TestCheckout_MissingTotalAmount(t *testing.T) {
	uc := newTestUseCase(passthroughService(), rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.TotalAmount = nil

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Valid total amount is required" {
		t.Errorf("unexpected message: %q", ve.Message)
	}
}

func TestCheckout_IncompleteLine(t *testing.T) {
	uc := newTestUseCase(passthroughService(), rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.Items[0].Price = nil

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Each item must have itemName, quantity, price, and total" {
		t.Errorf("unexpected message: %q", ve.Message)
	}
}

func TestCheckout_LineTotalMismatch(t *testing.T) {
	svc := passthroughService()
	uc := newTestUseCase(svc, rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.Items[0].Total = floatPtr(250)
	req.TotalAmount = floatPtr(250)

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if svc.calls != 0 {
		t.Error("persist must not run for a mismatched line total")
	}
}

func TestCheckout_GrandTotalMismatch(t *testing.T) {
	uc := newTestUseCase(passthroughService(), rebarResolver(5), &mockSalesRepository{})

	req := validRequest()
	req.TotalAmount = floatPtr(500)

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "Total amount does not match item totals" {
		t.Errorf("unexpected message: %q", ve.Message)
	}
}

func TestCheckout_InsufficientStock(t *testing.T) {
	svc := passthroughService()
	uc := newTestUseCase(svc, rebarResolver(5), &mockSalesRepository{})

	req := dto.CheckoutRequest{
		BuyerID: "B1",
		Items: []dto.CheckoutLineItem{
			{ItemName: "Rebar 10mm", Quantity: 10, Price: floatPtr(100), Total: floatPtr(1000)},
		},
		TotalAmount: floatPtr(1000),
	}

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := `Insufficient stock for "Rebar 10mm". Available: 5, Requested: 10`
	if ve.Message != want {
		t.Errorf("expected %q, got %q", want, ve.Message)
	}
	if svc.calls != 0 {
		t.Error("persist must not run when any line lacks stock")
	}
}

func TestCheckout_OneBadLineAbortsAll(t *testing.T) {
	svc := passthroughService()
	res := &mockResolver{
		ResolveFunc: func(ctx context.Context, name string) (*domain.StockItem, error) {
			if name == "Rebar 10mm" {
				return &domain.StockItem{ID: 1, Name: "Rebar 10mm", Quantity: 100}, nil
			}
			return &domain.StockItem{ID: 2, Name: "Angle Iron", Quantity: 1}, nil
		},
	}
	uc := newTestUseCase(svc, res, &mockSalesRepository{})

	req := dto.CheckoutRequest{
		BuyerID: "B1",
		Items: []dto.CheckoutLineItem{
			{ItemName: "Rebar 10mm", Quantity: 2, Price: floatPtr(100), Total: floatPtr(200)},
			{ItemName: "Angle Iron", Quantity: 5, Price: floatPtr(50), Total: floatPtr(250)},
		},
		TotalAmount: floatPtr(450),
	}

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if svc.calls != 0 {
		t.Error("no line may be persisted when another line fails availability")
	}
}

func TestCheckout_UnresolvedItemCarriesAvailability(t *testing.T) {
	svc := passthroughService()
	res := &mockResolver{
		ResolveFunc: func(ctx context.Context, name string) (*domain.StockItem, error) {
			return nil, &resolver.NotResolvedError{
				Name: name,
				Available: []domain.StockAvailability{
					{Name: "Rebar 10mm", Quantity: 5},
				},
			}
		},
	}
	uc := newTestUseCase(svc, res, &mockSalesRepository{})

	req := validRequest()
	req.Items[0].ItemName = "Flat Bar"

	_, err := uc.Checkout(context.Background(), auth.Actor{}, req)

	nre, ok := err.(*resolver.NotResolvedError)
	if !ok {
		t.Fatalf("expected NotResolvedError, got %v", err)
	}
	if len(nre.Available) != 1 || nre.Available[0].Name != "Rebar 10mm" {
		t.Errorf("unexpected availability listing: %+v", nre.Available)
	}
	if svc.calls != 0 {
		t.Error("persist must not run when a line cannot be resolved")
	}
}

func TestGetSaleByInvoiceID_NotFound(t *testing.T) {
	repo := &mockSalesRepository{
		FindByInvoiceIDFunc: func(ctx context.Context, invoiceID string) (*domain.Sale, error) {
			return nil, apperrors.NewNotFoundError("Invoice not found")
		},
	}
	uc := newTestUseCase(passthroughService(), rebarResolver(5), repo)

	_, err := uc.GetSaleByInvoiceID(context.Background(), "INV-nope")

	if _, ok := apperrors.IsNotFoundError(err); !ok {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestListSales_MapsToDTO(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockSalesRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Sale, error) {
			return []domain.Sale{
				{InvoiceID: "INV-2", BuyerID: "B2", TotalAmount: 50, SaleDate: now},
				{InvoiceID: "INV-1", BuyerID: "B1", TotalAmount: 100, SaleDate: now.Add(-time.Hour)},
			}, nil
		},
	}
	uc := newTestUseCase(passthroughService(), rebarResolver(5), repo)

	sales, err := uc.ListSales(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sales) != 2 || sales[0].InvoiceID != "INV-2" {
		t.Errorf("expected repository order preserved, got %+v", sales)
	}
}
