package handlers

import (
	"context"
	"net/http"
	"time"

	"neighborhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by database.MongoDB and cache.RedisCache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Health pings every dependency and reports 503 when any is down.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, pinger := range h.checks {
		if err := pinger.Ping(ctx); err != nil {
			results[name] = "unavailable: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, utils.APIResponse{
		Status: overall,
		Data: gin.H{
			"version": h.version,
			"checks":  results,
		},
		Timestamp: time.Now(),
	})
}
