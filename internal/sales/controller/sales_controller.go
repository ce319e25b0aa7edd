package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/dto"
	apperrors "tnrsteel/internal/errors"
	"tnrsteel/internal/inventory/resolver"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, actor auth.Actor, req dto.CheckoutRequest) (*dto.CheckoutResult, error)
	ListSales(ctx context.Context) ([]dto.SaleDTO, error)
	GetSaleByInvoiceID(ctx context.Context, invoiceID string) (*dto.SaleDTO, error)
}

type SalesController struct {
	useCase CheckoutUseCase
	logger  *zap.Logger
}

func NewSalesController(useCase CheckoutUseCase, logger *zap.Logger) *SalesController {
	return &SalesController{
		useCase: useCase,
		logger:  logger,
	}
}

type checkoutSuccessResponse struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	Sale          dto.SaleDTO `json:"sale"`
	StockStatus   string      `json:"stockStatus"`
	StockWarnings []string    `json:"stockWarnings,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type stockNotFoundResponse struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message"`
	AvailableItems interface{} `json:"availableItems"`
}

func (c *SalesController) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Request body must be valid JSON",
		})
		return
	}

	result, err := c.useCase.Checkout(r.Context(), auth.FromContext(r.Context()), req)
	if err != nil {
		c.handleCheckoutError(w, err, logger)
		return
	}

	if result.StockStatus == dto.StockPartial {
		logger.Warn("sale recorded with partial stock decrement",
			zap.String("invoiceId", result.Sale.InvoiceID), zap.Strings("warnings", result.StockWarnings))
	}

	c.writeJSON(w, http.StatusCreated, checkoutSuccessResponse{
		Success:       true,
		Message:       "Sale recorded successfully",
		Sale:          result.Sale,
		StockStatus:   string(result.StockStatus),
		StockWarnings: result.StockWarnings,
	})
}

func (c *SalesController) handleCheckoutError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var nre *resolver.NotResolvedError
	if errors.As(err, &nre) {
		logger.Warn("checkout rejected, item not in stock", zap.String("itemName", nre.Name))
		c.writeJSON(w, http.StatusBadRequest, stockNotFoundResponse{
			Success:        false,
			Message:        nre.Error(),
			AvailableItems: nre.Available,
		})
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Warn("checkout rejected", zap.String("reason", ve.Message))
		c.writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Message: ve.Message,
		})
		return
	}

	logger.Error("checkout failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Message: "Error adding sale",
	})
}

func (c *SalesController) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := c.useCase.ListSales(r.Context())
	if err != nil {
		c.logger.Error("listing sales failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Success: false,
			Message: "Error fetching sales",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sales":   sales,
	})
}

func (c *SalesController) GetSale(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "invoiceId")

	sale, err := c.useCase.GetSaleByInvoiceID(r.Context(), invoiceID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, errorResponse{
				Success: false,
				Message: "Invoice not found",
			})
			return
		}
		c.logger.Error("fetching sale failed", zap.String("invoiceId", invoiceID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Success: false,
			Message: "Error fetching sale",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sale":    sale,
	})
}

func (c *SalesController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
