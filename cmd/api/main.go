package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frenzy2004/JetSki/internal/api"
	"github.com/frenzy2004/JetSki/internal/api/handler"
	"github.com/frenzy2004/JetSki/internal/api/middleware"
	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/frenzy2004/JetSki/internal/repository"
	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/frenzy2004/JetSki/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	videoRepo := repository.NewVideoRepository(db)
	storyboardRepo := repository.NewStoryboardRepository(db)

	// Initialize services
	gptClient := service.NewGPTClient(&service.GPTConfig{
		Model:   cfg.LLM.Model,
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
	})

	transcriptService := service.NewTranscriptService()
	viralService := service.NewViralService(gptClient, &cfg.Pipeline)
	storyboardService := service.NewStoryboardService(gptClient, &cfg.Pipeline)
	summaryService := service.NewSummaryService(gptClient, &cfg.Pipeline)
	imageService := service.NewImageService(&cfg.Image, &cfg.Pipeline)

	pipeline := service.NewPipeline(
		transcriptService,
		viralService,
		storyboardService,
		summaryService,
		imageService,
		videoRepo,
		storyboardRepo,
	)

	// Initialize the export drive when configured
	var exporter handler.Exporter
	if cfg.Export.Enabled {
		objectStorage, err := storage.NewStorage(&storage.S3Config{
			Endpoint:  cfg.Export.Endpoint,
			AccessKey: cfg.Export.AccessKey,
			SecretKey: cfg.Export.SecretKey,
			UseSSL:    cfg.Export.UseSSL,
			Bucket:    cfg.Export.Bucket,
			Region:    cfg.Export.Region,
			PublicURL: cfg.Export.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize export storage")
		}
		exporter = service.NewExportService(objectStorage)
		appLogger.WithField("bucket", cfg.Export.Bucket).Info("Export drive enabled")
	}

	// Setup router
	router := api.SetupRouter(&api.Deps{
		Transcripts: transcriptService,
		Viral:       viralService,
		Storyboards: storyboardService,
		Summaries:   summaryService,
		Renderer:    imageService,
		Pipeline:    pipeline,
		Exporter:    exporter,
		Videos:      videoRepo,
		Comics:      storyboardRepo,
		Logger:      appLogger,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	}, cfg.Server.Mode)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
