package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Responder interface {
	Reply(ctx context.Context, message string) string
}

type Controller struct {
	responder Responder
	logger    *zap.Logger
}

func NewController(responder Responder, logger *zap.Logger) *Controller {
	return &Controller{responder: responder, logger: logger}
}

func (c *Controller) Chat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]string{"reply": "Please type a message first."})
		return
	}

	reply := c.responder.Reply(r.Context(), body.Message)
	c.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
