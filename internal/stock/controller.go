package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type Service interface {
	Add(ctx context.Context, p domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Issue(ctx context.Context, productName string, quantity int) (*domain.Product, error)
}

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

type productBody struct {
	Name      string  `json:"product_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type productDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"product_name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:        p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	p, err := c.service.Add(r.Context(), domain.Product{
		Name:      body.Name,
		Quantity:  body.Quantity,
		UnitPrice: body.UnitPrice,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    toProductDTO(*p),
	})
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid stock ID")
		return
	}

	p, err := c.service.Get(r.Context(), uint(id))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toProductDTO(*p),
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]productDTO, len(products))
	for i, p := range products {
		data[i] = toProductDTO(p)
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func (c *Controller) Issue(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"product_name"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	p, err := c.service.Issue(r.Context(), body.Name, body.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Stock issued successfully",
		"data":    toProductDTO(*p),
	})
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, nfe.Message)
		return
	}

	c.logger.Error("stock operation failed", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
