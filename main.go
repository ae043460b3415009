package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/pett-server/config"
	"github.com/NomadCrew/pett-server/docs"
	"github.com/NomadCrew/pett-server/handlers"
	"github.com/NomadCrew/pett-server/internal/buildinfo"
	"github.com/NomadCrew/pett-server/logger"
	"github.com/NomadCrew/pett-server/router"
	"github.com/NomadCrew/pett-server/services"
	"github.com/gin-gonic/gin"
)

// @title Pett Server API
// @version 0.1.0
// @description Greeting, health probe and build metadata endpoints.
// @BasePath /
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// health.txt is read from this directory.
	rootDir, err := config.ResolveRootDir(cfg.Server.RootDir)
	if err != nil {
		log.Fatalf("Failed to resolve root directory: %v", err)
	}

	metadata := buildinfo.Get()
	docs.SwaggerInfo.Version = metadata.Version
	log.Infow("Starting pett server",
		"version", metadata.Version,
		"revision", metadata.LastCommitSHA,
		"root_dir", rootDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	healthChecker := services.NewHealthChecker(rootDir)
	if cfg.Health.Watch {
		watcher, err := services.NewHealthWatcher(healthChecker)
		if err != nil {
			log.Fatalf("Failed to create health file watcher: %v", err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				log.Errorw("Health file watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		HealthHandler:   handlers.NewHealthHandler(healthChecker),
		MetadataHandler: handlers.NewMetadataHandler(metadata),
	})

	// Bind before serving so an unavailable address aborts startup.
	listener, err := net.Listen("tcp", cfg.Server.Address())
	if err != nil {
		log.Fatalf("Failed to bind %s: %v", cfg.Server.Address(), err)
	}

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", listener.Addr())
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped unexpectedly: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
		return
	}
	log.Info("Server stopped")
}
