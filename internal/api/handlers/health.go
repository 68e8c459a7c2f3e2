package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

const serviceVersion = "1.0.0"

type HealthHandler struct {
	cacheDir string
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func NewHealthHandler(cacheDir string) *HealthHandler {
	return &HealthHandler{
		cacheDir: cacheDir,
	}
}

// Root godoc
// @Summary Service status
// @Description Service name, version and endpoint listing
// @Tags health
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Service: "ytgate",
		Version: serviceVersion,
		Status:  "ok",
		Endpoints: map[string]string{
			"info":    "/api/info?url=",
			"audio":   "/api/audio?url=&quality=&bitrate=",
			"video":   "/api/video?url=&quality=",
			"formats": "/api/formats?url=",
			"studio":  "/api/studio?url=",
			"search":  "/api/search?q=",
			"health":  "/health",
		},
	})
}

// Health godoc
// @Summary Health check endpoint
// @Description Check the health of the service and the cache directory
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   serviceVersion,
		Services:  make(map[string]ServiceHealth),
	}

	response.Services["cache"] = h.checkCacheDir(c)

	for _, service := range response.Services {
		if service.Status != "healthy" {
			response.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) checkCacheDir(c *gin.Context) ServiceHealth {
	info, err := os.Stat(h.cacheDir)
	if err != nil {
		utils.LogError(c.Request.Context(), "Cache directory health check failed", err)
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "unhealthy", Error: "cache path is not a directory"}
	}

	probe, err := os.CreateTemp(h.cacheDir, ".healthcheck-*")
	if err != nil {
		utils.LogError(c.Request.Context(), "Cache directory is not writable", err)
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	probe.Close()
	os.Remove(probe.Name())

	return ServiceHealth{Status: "healthy"}
}
