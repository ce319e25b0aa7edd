package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type ProductsRepository interface {
	Insert(ctx context.Context, p domain.Product) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	DecrementIfAvailable(ctx context.Context, name string, quantity int) (bool, error)
}

type SalesStockRepository interface {
	IncrementQuantity(ctx context.Context, name string, quantity int, unitPrice float64) error
}

// StockService manages finished-goods stock. Issuing moves quantity from
// the finished-goods table into the indirect-sales stock, which is what
// checkout sells from.
type StockService struct {
	products   ProductsRepository
	salesStock SalesStockRepository
	logger     *zap.Logger
}

func NewStockService(products ProductsRepository, salesStock SalesStockRepository, logger *zap.Logger) *StockService {
	return &StockService{
		products:   products,
		salesStock: salesStock,
		logger:     logger,
	}
}

func (s *StockService) Add(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.Quantity <= 0 || p.UnitPrice <= 0 {
		return nil, apperrors.NewValidationError("Please provide all details")
	}
	p.Name = strings.TrimSpace(p.Name)

	if _, err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}

	return s.products.FindByName(ctx, p.Name)
}

func (s *StockService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *StockService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.FindAll(ctx)
}

// Issue transfers quantity to the indirect-sales channel. The decrement is
// conditional; the increment only runs once the decrement succeeded, so a
// failed issue never inflates sales stock.
func (s *StockService) Issue(ctx context.Context, productName string, quantity int) (*domain.Product, error) {
	name := strings.TrimSpace(productName)
	if name == "" || quantity <= 0 {
		return nil, apperrors.NewValidationError("Please provide all details")
	}

	product, err := s.products.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	applied, err := s.products.DecrementIfAvailable(ctx, product.Name, quantity)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Insufficient stock for %q. Available: %d, Requested: %d",
			product.Name, product.Quantity, quantity,
		))
	}

	if err := s.salesStock.IncrementQuantity(ctx, product.Name, quantity, product.UnitPrice); err != nil {
		// The finished-goods decrement already happened; surface loudly so
		// the quantities can be reconciled by hand.
		s.logger.Error("issued stock not added to sales stock",
			zap.String("productName", product.Name), zap.Int("quantity", quantity), zap.Error(err))
		return nil, apperrors.NewInternalError("issuing stock", err)
	}

	s.logger.Info("stock issued to sales channel",
		zap.String("productName", product.Name), zap.Int("quantity", quantity))

	return s.products.FindByName(ctx, product.Name)
}
