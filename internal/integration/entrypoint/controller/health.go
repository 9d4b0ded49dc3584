// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/backoffice/backend/internal/application/adapter"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthCheck
	redis    HealthCheck
	clock    adapter.Clock
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. redis may be nil.
func NewHealthController(database, redis HealthCheck, clock adapter.Clock) *HealthController {
	return &HealthController{
		database: database,
		redis:    redis,
		clock:    clock,
	}
}

// Check handles GET /health requests.
// The API is degraded without its database; Redis is optional.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, h.database, "connected", "disconnected"),
		Redis:     probe(ctx, h.redis, "connected", "disconnected"),
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}
	if h.redis == nil {
		response.Redis = "disabled"
	}

	status := http.StatusOK
	if response.Database != "connected" {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

func probe(ctx context.Context, check HealthCheck, up, down string) string {
	if check == nil || check(ctx) != nil {
		return down
	}
	return up
}
