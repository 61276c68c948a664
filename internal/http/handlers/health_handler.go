package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/wallet"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	snapshots Pinger
	adapter   *wallet.Adapter
}

// Pinger проверяет доступность хранилища снапшотов.
type Pinger interface {
	Ping() error
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(snapshots Pinger, adapter *wallet.Adapter) *HealthHandler {
	return &HealthHandler{snapshots: snapshots, adapter: adapter}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Проверка доступности каталога снапшотов
	if err := h.snapshots.Ping(); err != nil {
		checks["storage"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["storage"] = "healthy"
	}

	// Кошелёк опционален: его отсутствие не делает сервис нездоровым
	if h.adapter != nil && h.adapter.Available() {
		checks["wallet"] = "available"
	} else {
		checks["wallet"] = "not installed"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
