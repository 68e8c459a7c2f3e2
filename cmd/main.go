// Package main provides the entry point for the YouTube media gateway.
// @title YouTube Media Gateway API
// @version 1.0
// @description An HTTP gateway that resolves YouTube videos, serves metadata, streams video and transcodes audio to MP3 with a time-bounded disk cache.

// @host localhost:8080
// @BasePath /

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytgate/ytgate/internal/api/handlers"
	"github.com/ytgate/ytgate/internal/api/router"
	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/services/cache"
	"github.com/ytgate/ytgate/internal/services/transcode"
	"github.com/ytgate/ytgate/internal/services/youtube"
	"github.com/ytgate/ytgate/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting YouTube media gateway")

	// Initialize the disk cache and its background sweep
	cacheManager, err := cache.NewManager(&cfg.Cache)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}
	cacheManager.StartSweeper()

	// Initialize collaborators
	youtubeClient := youtube.NewClient()
	transcoder := transcode.NewFFmpeg(&cfg.FFmpeg)

	// Initialize handlers
	mediaHandler := handlers.NewMediaHandler(youtubeClient, cfg.Download.Timeout)
	audioHandler := handlers.NewAudioHandler(youtubeClient, transcoder, cacheManager, cfg.Download.Timeout)
	searchHandler := handlers.NewSearchHandler()
	healthHandler := handlers.NewHealthHandler(cfg.Cache.Dir)

	// Initialize router
	r := router.NewRouter(cfg, mediaHandler, audioHandler, searchHandler, healthHandler)

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop the cache sweeper
	cacheManager.Stop()

	logger.Info("Server shutdown complete")
}
