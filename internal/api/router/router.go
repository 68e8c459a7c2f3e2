package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ytgate/ytgate/internal/api/handlers"
	"github.com/ytgate/ytgate/internal/api/middleware"
	"github.com/ytgate/ytgate/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, mediaHandler *handlers.MediaHandler, audioHandler *handlers.AudioHandler, searchHandler *handlers.SearchHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware
	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Status endpoints (no rate limit)
	engine.GET("/", healthHandler.Root)
	engine.GET("/health", healthHandler.Health)

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API endpoints with rate limiting
	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.GET("/info", mediaHandler.Info)       // /api/info
		api.GET("/formats", mediaHandler.Formats) // /api/formats
		api.GET("/video", mediaHandler.Video)     // /api/video
		api.GET("/audio", audioHandler.Audio)     // /api/audio
		api.GET("/studio", audioHandler.Studio)   // /api/studio
		api.GET("/search", searchHandler.Search)  // /api/search
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Start() error {
	addr := r.config.Server.Host + ":" + r.config.Server.Port
	return r.engine.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
