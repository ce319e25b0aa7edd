package materials

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
	Add(ctx context.Context, m domain.Material) (*domain.Material, error)
	Get(ctx context.Context, id uint) (*domain.Material, error)
	List(ctx context.Context) ([]domain.Material, error)
	Remove(ctx context.Context, id uint) error
}

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

type materialBody struct {
	InvoiceID    string  `json:"invoice_id"`
	Name         string  `json:"material_name"`
	SupplierName string  `json:"supplier_name"`
	Quantity     int     `json:"material_quantity"`
	LotPrice     float64 `json:"lot_price"`
}

type materialDTO struct {
	ID           uint      `json:"id"`
	InvoiceID    string    `json:"invoice_id"`
	Name         string    `json:"material_name"`
	SupplierName string    `json:"supplier_name"`
	Quantity     int       `json:"material_quantity"`
	LotPrice     float64   `json:"lot_price"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toMaterialDTO(m domain.Material) materialDTO {
	return materialDTO{
		ID:           m.ID,
		InvoiceID:    m.InvoiceID,
		Name:         m.Name,
		SupplierName: m.SupplierName,
		Quantity:     m.Quantity,
		LotPrice:     m.LotPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	var body materialBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	m, err := c.service.Add(r.Context(), domain.Material{
		InvoiceID:    body.InvoiceID,
		Name:         body.Name,
		SupplierName: body.SupplierName,
		Quantity:     body.Quantity,
		LotPrice:     body.LotPrice,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    toMaterialDTO(*m),
	})
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	m, err := c.service.Get(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    toMaterialDTO(*m),
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	materials, err := c.service.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]materialDTO, len(materials))
	for i, m := range materials {
		data[i] = toMaterialDTO(m)
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func (c *Controller) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	if err := c.service.Remove(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Material deleted successfully",
	})
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid material ID")
		return 0, false
	}
	return uint(id), true
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

	c.logger.Error("material operation failed", zap.Error(err))
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
