package buyers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tnrsteel/internal/buyers/repository"
	"tnrsteel/internal/domain"
	apperrors "tnrsteel/internal/errors"
)

// Controller is thin CRUD over the buyer registry; there is no business
// logic beyond field presence, so it talks to the repository directly.
type Controller struct {
	repo   *repository.MySQLBuyersRepository
	logger *zap.Logger
}

func NewController(repo *repository.MySQLBuyersRepository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

type buyerBody struct {
	Name    string  `json:"buyer_name"`
	Company string  `json:"company"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	var body buyerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" {
		c.writeError(w, http.StatusBadRequest, "Please provide all details")
		return
	}

	id, err := c.repo.Insert(r.Context(), domain.Buyer{
		Name:    body.Name,
		Company: body.Company,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	})
	if err != nil {
		c.handleError(w, err)
		return
	}

	buyer, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    buyer,
	})
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid buyer ID")
		return
	}

	buyer, err := c.repo.FindByID(r.Context(), uint(id))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    buyer,
	})
}

func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	buyers, err := c.repo.FindAll(r.Context())
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    buyers,
	})
}

func (c *Controller) Remove(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "Invalid buyer ID")
		return
	}

	if err := c.repo.Delete(r.Context(), uint(id)); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Buyer deleted successfully",
	})
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, nfe.Message)
		return
	}

	c.logger.Error("buyer operation failed", zap.Error(err))
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
