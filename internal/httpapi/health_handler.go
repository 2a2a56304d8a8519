package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harsh-BH/judgeworker/internal/domain"
)

// HealthHandler reports this worker's configured language and readiness.
// Unlike the teacher's api component (which pings Postgres, RabbitMQ,
// and Redis), this worker has no external dependencies on its own
// synchronous request path, so there is nothing further to probe here.
type HealthHandler struct {
	language domain.Language
}

func NewHealthHandler(language domain.Language) *HealthHandler {
	return &HealthHandler{language: language}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"language": h.language,
	})
}
