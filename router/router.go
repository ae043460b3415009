package router

import (
	"github.com/NomadCrew/pett-server/config"
	_ "github.com/NomadCrew/pett-server/docs" // registers the swagger spec
	"github.com/NomadCrew/pett-server/handlers"
	"github.com/NomadCrew/pett-server/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	HealthHandler   *handlers.HealthHandler
	MetadataHandler *handlers.MetadataHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(middleware.RecoveryHandler())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.AccessLogMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	// Anything not listed below, including other methods on these paths.
	r.NoRoute(middleware.NotFoundHandler())

	r.GET("/", deps.HealthHandler.GreetingHandler)
	r.GET("/health", deps.HealthHandler.HealthCheckHandler)
	r.GET("/metadata", deps.MetadataHandler.GetMetadataHandler)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !deps.Config.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
