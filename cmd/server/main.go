package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mannar-express/service-seats/internal/application"
	"github.com/mannar-express/service-seats/internal/cache"
	"github.com/mannar-express/service-seats/internal/config"
	"github.com/mannar-express/service-seats/internal/database"
	"github.com/mannar-express/service-seats/internal/events"
	"github.com/mannar-express/service-seats/internal/handler"
	"github.com/mannar-express/service-seats/internal/logger"
	"github.com/mannar-express/service-seats/internal/middleware"
	"github.com/mannar-express/service-seats/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-seats")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-seats",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&repository.SeatModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize Kafka publisher
	publisher := events.NewKafkaPublisher(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = publisher.Close() }()

	// Initialize repository and read cache
	seatRepo := repository.NewGormSeatRepository(db)
	seatCache := cache.NewSeatCache(log,
		cache.WithTTL(cfg.CacheTTL),
		cache.WithSweepInterval(cfg.CacheSweepEvery),
	)

	// Run the cache sweep until shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go seatCache.Start(ctx)

	// Initialize application service
	seatService := application.NewSeatService(seatRepo, seatCache, publisher, log)

	// Initialize HTTP handlers
	seatHandler := handler.NewSeatHandler(seatService, cfg.DefaultSeatCount)
	routeHandler := handler.NewRouteHandler()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-seats")
	healthHandler.RegisterRoutes(router)

	// Register routes
	seatHandler.RegisterRoutes(&router.RouterGroup)
	routeHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-seats...")

	// Stop the cache sweep
	cancel()
	seatCache.Stop()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-seats stopped")
}
