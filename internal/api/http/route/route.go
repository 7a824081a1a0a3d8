package route

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Finure/app-gateway/internal/api/http/handler"
	"github.com/Finure/app-gateway/internal/api/http/middleware"
	"github.com/Finure/app-gateway/internal/config"
)

func SetupRouter(
	log *zap.Logger,
	cfg *config.Config,
	healthHdl HealthHandler,
	applicationHdl ApplicationHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.Use(gin.Recovery())

	// middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestTimeout(cfg.HTTPServer.Timeout.Request))
	router.Use(middleware.CORS(cfg.HTTPServer.CORS))

	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.NoMethod)
	router.NoRoute(handler.NoRoute)

	basePath := router.Group(cfg.HTTPServer.BasePath)

	if cfg.HTTPServer.Docs {
		docsPath := basePath.Group("/docs")
		RegisterDocs(docsPath)
	}

	healthPath := basePath.Group("/health")
	RegisterHealth(healthPath, healthHdl)

	RegisterApplication(basePath, applicationHdl)

	return router
}
