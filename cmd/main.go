package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"butler-alert-service/internal/api"
	"butler-alert-service/internal/config"
	"butler-alert-service/internal/db"
	"butler-alert-service/internal/engine"
	"butler-alert-service/internal/events"
	"butler-alert-service/internal/logging"
	"butler-alert-service/internal/metrics"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Connect to database
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	// Initialize generation engine
	eng := engine.New(dbConn, logger, cfg)

	// Optional Kafka alert.created publisher
	if cfg.Kafka.Broker != "" {
		publisher, err := events.NewPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Errorf("Failed to init Kafka publisher: %v", err)
			log.Fatalf("Kafka publisher init failed: %v", err)
		}
		defer publisher.Close()
		eng.AddSink(publisher)
	}

	// Optional Redis cycle metrics
	if cfg.Redis.Addr != "" {
		collector, err := metrics.NewCollector(cfg.Redis.Addr, logger)
		if err != nil {
			logger.Warnf("Metrics disabled, Redis unreachable: %v", err)
		} else {
			eng.SetRecorder(collector)
			collector.Start(ctx, &wg)
		}
	}

	// Live alert stream hub
	hub := api.NewHub(logger)
	eng.AddSink(hub)

	// Start the generation scheduler
	eng.Start(ctx, &wg)

	// Start API server
	handler := api.NewHandler(dbConn, logger, eng, hub)
	router := api.NewRouter(logger, cfg, handler)
	server := &http.Server{Addr: cfg.API.Port, Handler: router}
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("API shutdown failed: %v", err)
	}
	wg.Wait()
	logger.Infof("Service stopped")
}
