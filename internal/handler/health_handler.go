package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck проверяет доступность одной зависимости
type HealthCheck func(ctx context.Context) error

// HealthHandler отвечает на GET /healthz
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler создает обработчик; checks может быть пустым
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health выполняет все проверки и возвращает 503, если хотя бы одна не прошла
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			log.Printf("[HealthHandler] Проверка %s не прошла: %v", name, err)
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"checks":  results,
	})
}
