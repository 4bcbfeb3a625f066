package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargotracker-service/internal/infrastructure/config"
	"cargotracker-service/internal/infrastructure/persistence"
	"cargotracker-service/internal/interface/rest"
	"cargotracker-service/pkg/logger"
	"cargotracker-service/pkg/metrics"
	"cargotracker-service/pkg/utils"

	cargoRepo "cargotracker-service/internal/interface/repository"
	"cargotracker-service/internal/usecase"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Cargo Tracker Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up reference data repositories
	locationRepository := cargoRepo.NewGormLocationRepository(gormDB)
	voyageRepository := cargoRepo.NewGormVoyageRepository(gormDB)

	// Set up cargo store and notification sink
	cargoRepository := cargoRepo.NewMongoCargoRepository(db)
	misdirectionNotifier := cargoRepo.NewHTTPMisdirectionNotifier(log)

	// Set up services
	appMetrics := metrics.NewMetrics("cargotracker")
	reportParser := utils.NewReportParser(log)
	eventService := usecase.NewHandlingEventService(cargoRepository, locationRepository, voyageRepository, misdirectionNotifier, log)
	bookingService := usecase.NewBookingService(cargoRepository, locationRepository, log)
	trackingService := usecase.NewTrackingService(cargoRepository)

	// Set up the ingestion pipeline with the configured strategy
	reportProcessor := usecase.NewHandlingReportProcessor(reportParser, eventService, log, appMetrics)
	reportHandler, err := usecase.NewHandlingReportHandler(ctx, cfg.ReportStrategy, reportProcessor, log, cfg.ReportWorkers, cfg.ReportQueueSize)
	if err != nil {
		log.Fatal("Failed to create report handler", "error", err)
	}
	log.Info("Report handler ready", "strategy", cfg.ReportStrategy)

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	restHandler := rest.NewHandler(reportHandler, bookingService, trackingService, log)
	restHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop pipeline workers

	if queued, ok := reportHandler.(*usecase.QueuedReportHandler); ok {
		queued.Shutdown()
	}

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Cargo Tracker Service stopped")
}
