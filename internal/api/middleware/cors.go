package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/config"
)

// CORSMiddleware builds the CORS filter from configuration. The default
// profile allows all origins with GET/POST and the Content-Type and
// Authorization headers.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	// No origin list means no cross-origin access; skip the filter instead
	// of letting cors.New reject the empty config.
	if !cfg.Enabled || len(cfg.AllowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(corsCfg)
}
