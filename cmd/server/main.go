// Package main is the entry point for the hueflow gradient server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hueflow/server/internal/api"
	"github.com/hueflow/server/internal/cache"
	"github.com/hueflow/server/internal/config"
	"github.com/hueflow/server/internal/palette"
	"github.com/hueflow/server/internal/palettestore"
	"github.com/hueflow/server/internal/render"
	"github.com/hueflow/server/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting hueflow server on port %d", cfg.Server.Port)

	// Initialize cache manager
	cacheManager, err := cache.NewManager(cache.Config{
		StripCacheSizeMB: cfg.Cache.StripSizeMB,
		StripTTL:         time.Duration(cfg.Cache.StripTTLMinutes) * time.Minute,
		ResultCacheSize:  cfg.Cache.ResultCacheSize,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize strip renderer
	stripRenderer := render.NewStripRenderer(render.Config{
		StripWidth:  cfg.Render.StripWidth,
		StripHeight: cfg.Render.StripHeight,
	})

	// Initialize palette store (SQLite persistence)
	store, err := palettestore.NewStore(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to initialize palette store: %v", err)
	}
	defer store.Close()

	// Initialize palette registry with built-ins
	registry := palette.NewRegistry()
	if _, err := registry.Get(cfg.Render.DefaultPalette); err != nil {
		log.Fatalf("Configured default palette %q is not built-in", cfg.Render.DefaultPalette)
	}

	// Initialize gradient service (loads saved palettes from the store)
	gradientService, err := service.NewGradientService(service.GradientServiceConfig{
		Cache:    cacheManager,
		Renderer: stripRenderer,
		Registry: registry,
		Store:    store,
	})
	if err != nil {
		log.Fatalf("Failed to initialize gradient service: %v", err)
	}

	log.Printf("Palettes loaded: %d (default: %s)", len(gradientService.Palettes()), cfg.Render.DefaultPalette)

	// Set up HTTP router
	router := api.NewRouter(api.RouterConfig{
		Service:     gradientService,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
