package handlers

import (
	"net/http"
	"time"

	"ledgerview/internal/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db *gorm.DB
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck reports gateway liveness and upload-ledger connectivity
// @Summary Health check
// @Description Check gateway and upload-ledger connectivity status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (ledger connection failed)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return sendUnhealthy(c)
	}

	if err := sqlDB.Ping(); err != nil {
		return sendUnhealthy(c)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func sendUnhealthy(c echo.Context) error {
	traceID := getTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}
	errorResponse := errors.NewErrorResponse(
		errors.SystemServiceUnavailable,
		traceID,
		errors.WithDetails("Upload ledger connection failed"),
	)
	return c.JSON(http.StatusServiceUnavailable, errorResponse)
}
