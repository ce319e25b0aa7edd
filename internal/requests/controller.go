package requests

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tnrsteel/internal/auth"
	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

type Service interface {
	Create(ctx context.Context, actor auth.Actor, itemRef string, quantity int) (*domain.Request, error)
	List(ctx context.Context) ([]domain.Request, error)
	SetStatus(ctx context.Context, actor auth.Actor, id uint, status string) (*domain.Request, error)
	Delete(ctx context.Context, id uint) error
}

// Controller serves one requisition surface; the router mounts one instance
// for material requests and one for production requests. The two differ only
// in the JSON key naming the requested item: material_id vs product_name.
type Controller struct {
	service   Service
	itemField string
	logger    *zap.Logger
}

func NewController(service Service, itemField string, logger *zap.Logger) *Controller {
	return &Controller{service: service, itemField: itemField, logger: logger}
}

type createRequestBody struct {
	MaterialID  string `json:"material_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"request_quantity"`
}

func (b createRequestBody) itemRef(itemField string) string {
	if itemField == "product_name" {
		return b.ProductName
	}
	return b.MaterialID
}

func (c *Controller) toRequestPayload(req domain.Request) map[string]interface{} {
	return map[string]interface{}{
		"id":               req.ID,
		c.itemField:        req.ItemRef,
		"request_quantity": req.Quantity,
		"status":           req.Status,
		"requested_by":     req.RequestedBy,
		"decided_by":       req.DecidedBy,
		"createdAt":        req.CreatedAt,
		"updatedAt":        req.UpdatedAt,
	}
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	req, err := c.service.Create(r.Context(), auth.FromContext(r.Context()), body.itemRef(c.itemField), body.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    c.toRequestPayload(*req),
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	requests, err := c.service.List(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	data := make([]map[string]interface{}, len(requests))
	for i, req := range requests {
		data[i] = c.toRequestPayload(req)
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func (c *Controller) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	req, err := c.service.SetStatus(r.Context(), auth.FromContext(r.Context()), id, body.Status)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    c.toRequestPayload(*req),
	})
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.parseID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Request deleted successfully",
	})
}

func (c *Controller) parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid request ID")
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

	c.logger.Error("request operation failed", zap.Error(err))
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
