package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Harsh-BH/judgeworker/internal/domain"
	"github.com/Harsh-BH/judgeworker/internal/httpapi/middleware"
)

// RouterDeps holds all dependencies needed to construct the router.
type RouterDeps struct {
	Runner        BatchRunner
	Callback      Deliverer
	Language      domain.Language
	MaxConcurrent int
	ApiHeaderName string
	ApiKey        string
	Logger        *zap.Logger
}

// NewRouter builds the gin.Engine exposing the worker's HTTP surface:
// POST /execute (the Evaluation Service Facade), GET /health, and
// GET /metrics.
func NewRouter(deps *RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.BodySizeLimit(4 << 20)) // 4 MB: source code + test cases

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", NewHealthHandler(deps.Language).Health)

	authed := router.Group("")
	authed.Use(middleware.APIKeyAuth(deps.ApiHeaderName, deps.ApiKey))
	{
		execHandler := NewExecuteHandler(deps.Runner, deps.Callback, deps.MaxConcurrent, deps.Logger)
		authed.POST("/execute", execHandler.Execute)
	}

	return router
}
