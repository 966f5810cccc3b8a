package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carprice/internal/handler"
	"carprice/internal/middleware"
	"carprice/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
// metricsH may be nil, in which case /metrics is not served.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	predictH *handler.PredictHandler,
	batchH *handler.BatchHandler,
	catalogH *handler.CatalogHandler,
	healthH *handler.HealthHandler,
	metricsH http.Handler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	if metricsH != nil {
		r.GET("/metrics", gin.WrapH(metricsH))
	}

	api := r.Group("/api")

	// Health checks
	api.GET("/health", healthH.Liveness)
	api.GET("/ready", healthH.Readiness)

	// Prediction relay, unauthenticated like the predictor it fronts
	api.POST("/predict", predictH.Relay)

	// Catalog is public so the form can load before login
	catalog := api.Group("/catalog")
	catalog.GET("/brands", catalogH.Brands)
	catalog.GET("/brands/:brand/types", catalogH.Types)

	// Public auth routes
	auth := api.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/auth/refresh", authH.Refresh)
	protected.POST("/cars/predict", predictH.PredictSingle)

	batch := protected.Group("/batch")
	batch.POST("/upload", batchH.Upload)
	batch.GET("", batchH.State)
	batch.DELETE("", batchH.Reset)
	batch.GET("/export", batchH.Export)
	batch.GET("/archive", batchH.Archive)

	return r
}
