package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/domain"
	"tnrsteel/internal/dto"
	apperrors "tnrsteel/internal/errors"
)

type CheckoutService interface {
	PersistAndApply(ctx context.Context, buyerID string, items []domain.SaleLineItem, totalAmount float64) (*dto.CheckoutResult, error)
}

type StockResolver interface {
	Resolve(ctx context.Context, name string) (*domain.StockItem, error)
}

type SalesRepository interface {
	FindAll(ctx context.Context) ([]domain.Sale, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Sale, error)
}

// CheckoutUseCase validates an incoming order and runs the read-only
// availability pass. Only when every line resolves and has sufficient stock
// does it hand over to the service for persistence and decrements.
type CheckoutUseCase struct {
	checkoutSvc CheckoutService
	resolver    StockResolver
	salesRepo   SalesRepository
	logger      *zap.Logger
}

func NewCheckoutUseCase(
	checkoutSvc CheckoutService,
	resolver StockResolver,
	salesRepo SalesRepository,
	logger *zap.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		checkoutSvc: checkoutSvc,
		resolver:    resolver,
		salesRepo:   salesRepo,
		logger:      logger,
	}
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor auth.Actor, req dto.CheckoutRequest) (*dto.CheckoutResult, error) {
	uc.logger.Info("checkout started",
		zap.String("actorId", actor.ID), zap.String("buyerId", req.BuyerID), zap.Int("itemCount", len(req.Items)))

	items, err := parseCheckoutRequest(req)
	if err != nil {
		return nil, err
	}

	// Availability pass, read only. Any line failing aborts the whole
	// checkout before anything is written.
	for _, item := range items {
		stock, err := uc.resolver.Resolve(ctx, item.ItemName)
		if err != nil {
			return nil, err
		}
		if stock.Quantity < item.Quantity {
			return nil, apperrors.NewValidationError(fmt.Sprintf(
				"Insufficient stock for %q. Available: %d, Requested: %d",
				item.ItemName, stock.Quantity, item.Quantity,
			))
		}
	}

	return uc.checkoutSvc.PersistAndApply(ctx, req.BuyerID, items, *req.TotalAmount)
}

// parseCheckoutRequest is the typed parse-or-reject step at the boundary:
// field presence, per-line shape, and the decimal verification of line
// totals and the declared grand total.
func parseCheckoutRequest(req dto.CheckoutRequest) ([]domain.SaleLineItem, error) {
	if strings.TrimSpace(req.BuyerID) == "" {
		return nil, apperrors.NewValidationError("Buyer ID is required",
			apperrors.ValidationDetail{Field: "buyerId", Message: "buyerId is required"})
	}

	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("Valid items array is required",
			apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})
	}

	if req.TotalAmount == nil || math.IsNaN(*req.TotalAmount) || math.IsInf(*req.TotalAmount, 0) {
		return nil, apperrors.NewValidationError("Valid total amount is required",
			apperrors.ValidationDetail{Field: "totalAmount", Message: "totalAmount must be a number"})
	}

	items := make([]domain.SaleLineItem, len(req.Items))
	for i, line := range req.Items {
		if strings.TrimSpace(line.ItemName) == "" || line.Quantity <= 0 || line.Price == nil || line.Total == nil {
			return nil, apperrors.NewValidationError(
				"Each item must have itemName, quantity, price, and total",
				apperrors.ValidationDetail{
					Field:   "items[" + strconv.Itoa(i) + "]",
					Message: "itemName, quantity, price, and total are required",
				})
		}

		items[i] = domain.SaleLineItem{
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    *line.Price,
			Total:    *line.Total,
		}

		if !items[i].TotalMatches() {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Invalid total for item %q: expected %s", line.ItemName, items[i].ExpectedTotal()),
				apperrors.ValidationDetail{
					Field:   "items[" + strconv.Itoa(i) + "].total",
					Message: "total must equal quantity x price",
				})
		}
	}

	if !decimal.NewFromFloat(*req.TotalAmount).Equal(domain.SumLineTotals(items)) {
		return nil, apperrors.NewValidationError("Total amount does not match item totals",
			apperrors.ValidationDetail{Field: "totalAmount", Message: "totalAmount must equal the sum of item totals"})
	}

	return items, nil
}

func (uc *CheckoutUseCase) ListSales(ctx context.Context) ([]dto.SaleDTO, error) {
	sales, err := uc.salesRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SaleDTO, len(sales))
	for i, sale := range sales {
		out[i] = dto.NewSaleDTO(sale)
	}
	return out, nil
}

func (uc *CheckoutUseCase) GetSaleByInvoiceID(ctx context.Context, invoiceID string) (*dto.SaleDTO, error) {
	sale, err := uc.salesRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	out := dto.NewSaleDTO(*sale)
	return &out, nil
}
