package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/ai"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
)

type HealthHandler struct {
	store   repos.Store
	gateway *ai.Gateway
	now     func() time.Time
}

func NewHealthHandler(store repos.Store, gateway *ai.Gateway) *HealthHandler {
	return &HealthHandler{store: store, gateway: gateway, now: time.Now}
}

// GET /api/health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"message":   "StudyNotes API is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	}
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		body["store"] = h.store.Backend()
		if err := h.store.Ping(ctx); err != nil {
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	if h.gateway != nil {
		body["aiLive"] = h.gateway.Live()
	}
	c.JSON(http.StatusOK, body)
}
