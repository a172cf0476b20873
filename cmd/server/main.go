package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sarasmohod/hackathon-rift/internal/analysis"
	"github.com/sarasmohod/hackathon-rift/internal/api"
	"github.com/sarasmohod/hackathon-rift/internal/config"
	"github.com/sarasmohod/hackathon-rift/internal/pkg/logger"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	log, err := logger.New(cfg.Telemetry.ServiceName, cfg.Telemetry.Environment, cfg.Telemetry.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Initialize Engine
	engine := analysis.NewEngine(cfg, log)

	// 4. Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// 5. Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure()) // Security headers
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.Server.MaxUploadBytes)))

	// CORS Setup (the frontend graph renderer runs on a different origin)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Security.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	// 6. Routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api.NewAnalyzeHandler(engine, log).Register(e)

	// 7. Start Server (Graceful Shutdown)
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalf("shutting down the server: %v", err)
		}
	}()

	log.Sugar().Infof("Server started on %s", serverAddr)

	// Wait for interrupt signal to gracefully shutdown the server with a timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Sugar().Fatal(err)
	}

	log.Sugar().Info("Server exited properly")
}
