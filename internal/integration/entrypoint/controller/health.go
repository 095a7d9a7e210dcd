package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	healthConnected    = "connected"
	healthDisconnected = "disconnected"
	healthDisabled     = "disabled"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	redisHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil redisHealthChecker reports redis as disabled.
func NewHealthController(dbHealthChecker, redisHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		redisHealthChecker: redisHealthChecker,
	}
}

// Check handles GET /health requests.
// It answers 503 when the database is unreachable; a down redis only degrades rate limiting.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := healthDisconnected
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = healthConnected
	}

	redisStatus := healthDisabled
	if h.redisHealthChecker != nil {
		redisStatus = healthDisconnected
		if h.redisHealthChecker() {
			redisStatus = healthConnected
		}
	}

	status, code := "ok", http.StatusOK
	switch {
	case dbStatus != healthConnected:
		status, code = "unavailable", http.StatusServiceUnavailable
	case redisStatus == healthDisconnected:
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Redis:     redisStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
