package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kozsync/internal/config"
	"kozsync/internal/database"
	"kozsync/internal/logger"
	"kozsync/internal/services/woocommerce"
	"kozsync/internal/sync"
	"kozsync/internal/worker"
	"kozsync/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize push pipeline
	catalog := woocommerce.NewClient(cfg.WooBaseURL, cfg.WooConsumerKey, cfg.WooConsumerSecret, logger)
	store := sync.NewGormStore(db.DB)
	pusher := sync.NewPusher(catalog, store, logger)
	processor := processors.NewPushProcessor(pusher, logger)

	// Initialize worker
	w := worker.New(cfg, logger, processor)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}
