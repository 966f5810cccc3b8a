package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/process"

	"carprice/internal/service"
)

// UptimeProbe reports how long the serving process has been running.
type UptimeProbe func(ctx context.Context) (time.Duration, error)

// ProcessUptime reads the current process start time from the OS.
func ProcessUptime(ctx context.Context) (time.Duration, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return 0, fmt.Errorf("reading process: %w", err)
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading process start time: %w", err)
	}
	return time.Since(time.UnixMilli(created)), nil
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	environment  string
	uptime       UptimeProbe
	relayService service.RelayService
}

// NewHealthHandler creates a new HealthHandler. A nil probe uses ProcessUptime.
func NewHealthHandler(environment string, uptime UptimeProbe, relayService service.RelayService) *HealthHandler {
	if uptime == nil {
		uptime = ProcessUptime
	}
	return &HealthHandler{environment: environment, uptime: uptime, relayService: relayService}
}

// Liveness handles GET /api/health
func (h *HealthHandler) Liveness(c *gin.Context) {
	uptime, err := h.probe(c.Request.Context())
	now := time.Now().UTC().Format(time.RFC3339)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": now,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   now,
		"uptime":      uptime.Seconds(),
		"environment": h.environment,
	})
}

// Readiness handles GET /api/ready. It checks that the upstream predictor answers.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.relayService.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// probe runs the uptime probe, turning a panic into an error.
func (h *HealthHandler) probe(ctx context.Context) (uptime time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("uptime probe panicked: %v", r)
		}
	}()
	return h.uptime(ctx)
}
