package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"tnrsteel/internal/domain"
	"tnrsteel/internal/dto"
	apperrors "tnrsteel/internal/errors"
	"tnrsteel/internal/infrastructure/mysql"
)

type SalesRepository interface {
	Insert(ctx context.Context, sale domain.Sale) (uint, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*domain.Sale, error)
}

type StockResolver interface {
	Resolve(ctx context.Context, name string) (*domain.StockItem, error)
}

type StockRepository interface {
	DecrementIfAvailable(ctx context.Context, name string, quantity int) (bool, error)
}

// CheckoutService owns the mutating half of a checkout: persisting the sale
// under a unique invoice id, verifying the write, then applying the stock
// decrements. The read-only availability pass happens in the use case before
// this service ever runs.
type CheckoutService struct {
	salesRepo   SalesRepository
	resolver    StockResolver
	stockRepo   StockRepository
	logger      *zap.Logger
	callTimeout time.Duration
}

func NewCheckoutService(
	salesRepo SalesRepository,
	resolver StockResolver,
	stockRepo StockRepository,
	logger *zap.Logger,
	callTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		salesRepo:   salesRepo,
		resolver:    resolver,
		stockRepo:   stockRepo,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

func newInvoiceID() string {
	return fmt.Sprintf("INV-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// PersistAndApply persists the sale and decrements stock for each line.
//
// Invoice collisions are recovered exactly once by regenerating the id; a
// second collision propagates. Decrement failures after the sale is durable
// do not fail the checkout; they are reported through StockStatus and
// StockWarnings so the caller can reconcile.
func (s *CheckoutService) PersistAndApply(
	ctx context.Context,
	buyerID string,
	items []domain.SaleLineItem,
	totalAmount float64,
) (*dto.CheckoutResult, error) {
	sale := domain.Sale{
		InvoiceID:   newInvoiceID(),
		BuyerID:     buyerID,
		Items:       items,
		TotalAmount: totalAmount,
		SaleDate:    time.Now().UTC(),
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	saleID, err := s.salesRepo.Insert(saveCtx, sale)
	if mysql.IsDuplicateKey(err) {
		retryID := newInvoiceID()
		s.logger.Warn("duplicate invoice id, retrying with a new one",
			zap.String("invoiceId", sale.InvoiceID), zap.String("retryInvoiceId", retryID))
		sale.InvoiceID = retryID
		saleID, err = s.salesRepo.Insert(saveCtx, sale)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("saving sale", err)
	}
	sale.ID = saleID

	// The sale must be readable by its invoice id before it is reported
	// as recorded.
	verified, err := s.salesRepo.FindByInvoiceID(saveCtx, sale.InvoiceID)
	if err != nil {
		return nil, apperrors.NewInternalError("sale verification failed", err)
	}

	s.logger.Info("sale saved",
		zap.String("invoiceId", sale.InvoiceID), zap.Uint("saleId", sale.ID),
		zap.String("buyerId", buyerID), zap.Float64("totalAmount", totalAmount))

	status, warnings := s.applyDecrements(ctx, sale.InvoiceID, items)

	return &dto.CheckoutResult{
		Sale:          dto.NewSaleDTO(*verified),
		StockStatus:   status,
		StockWarnings: warnings,
	}, nil
}

func (s *CheckoutService) applyDecrements(
	ctx context.Context,
	invoiceID string,
	items []domain.SaleLineItem,
) (dto.StockApplyStatus, []string) {
	var warnings []string

	for _, item := range items {
		warning := s.decrementLine(ctx, invoiceID, item)
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if len(warnings) > 0 {
		return dto.StockPartial, warnings
	}
	return dto.StockApplied, nil
}

// decrementLine re-resolves the line's name and applies one conditional
// decrement. Each line is independent: a failure here never rolls back the
// sale or stops the remaining lines.
func (s *CheckoutService) decrementLine(ctx context.Context, invoiceID string, item domain.SaleLineItem) string {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	stock, err := s.resolver.Resolve(callCtx, item.ItemName)
	if err != nil {
		s.logger.Error("stock decrement skipped, item no longer resolvable",
			zap.String("invoiceId", invoiceID), zap.String("itemName", item.ItemName), zap.Error(err))
		return fmt.Sprintf("stock for %q was not decremented: item not found", item.ItemName)
	}

	applied, err := s.stockRepo.DecrementIfAvailable(callCtx, stock.Name, item.Quantity)
	if err != nil {
		s.logger.Error("stock decrement failed",
			zap.String("invoiceId", invoiceID), zap.String("itemName", stock.Name), zap.Error(err))
		return fmt.Sprintf("stock for %q was not decremented: store error", item.ItemName)
	}
	if !applied {
		s.logger.Error("stock decrement rejected, quantity no longer sufficient",
			zap.String("invoiceId", invoiceID), zap.String("itemName", stock.Name), zap.Int("requested", item.Quantity))
		return fmt.Sprintf("stock for %q was not decremented: insufficient quantity", item.ItemName)
	}

	s.logger.Info("stock decremented",
		zap.String("invoiceId", invoiceID), zap.String("itemName", stock.Name), zap.Int("quantity", item.Quantity))
	return ""
}
