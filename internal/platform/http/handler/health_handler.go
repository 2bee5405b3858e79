// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookmark_backend/internal/api"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler. A nil db reports liveness only.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports "ok" when the process is up and the database answers a ping,
// and 503 "unavailable" otherwise. Responses are never cached.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			slog.WarnContext(ctx, "health check: database ping failed", "error", err)
			h.respond(c, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	h.respond(c, http.StatusOK, "ok")
}

func (h *HealthHandler) respond(c *gin.Context, status int, text string) {
	switch c.Request.Method {
	case http.MethodHead:
		c.Status(status)
	default:
		c.JSON(status, api.HealthResponse{Status: text})
	}
}
