package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-service/src/internal/config"
	"finance-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

func main() {
	viperConfig := config.NewViper()
	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	ctx := context.Background()
	db, err := config.NewDatabase(ctx, viperConfig, logger)
	if err != nil {
		logger.Error("main", fmt.Sprintf("Failed to open database: %v", err), "main", "")
		os.Exit(1)
	}
	redisClient, err := config.NewRedis(ctx, viperConfig)
	if err != nil {
		logger.Error("main", fmt.Sprintf("Redis unavailable, report cache disabled: %v", err), "main", "")
		redisClient = nil
	}
	producer, err := config.NewKafkaProducer(viperConfig, logger)
	if err != nil {
		logger.Error("main", fmt.Sprintf("Kafka unavailable, events disabled: %v", err), "main", "")
		producer = nil
	}
	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)
	mux := asynq.NewServeMux()

	config.Bootstrap(&config.BootstrapConfig{
		DB:       db,
		App:      app,
		Log:      logger,
		Validate: validate,
		Config:   viperConfig,
		Producer: producer,
		Redis:    redisClient,
		Async:    mux,
	})

	var worker *asynq.Server
	var scheduler *asynq.Scheduler
	if viperConfig.GetBool("reconciliation.enabled") {
		worker = config.NewAsynqServer(viperConfig, logger)
		if err := worker.Start(mux); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start worker: %v", err), "main", "")
		}
		scheduler, err = config.NewAsynqScheduler(viperConfig, logger, config.NewLocation(viperConfig, logger))
		if err != nil {
			logger.Error("main", fmt.Sprintf("Failed to create scheduler: %v", err), "main", "")
		} else if err := scheduler.Start(); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start scheduler: %v", err), "main", "")
		}
	}

	go func() {
		webPort := viperConfig.GetInt("web.port")
		if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("main", "Server finance-service is shutting down...", "graceful", "")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
	}
	if scheduler != nil {
		scheduler.Shutdown()
	}
	if worker != nil {
		worker.Shutdown()
	}
	if producer != nil {
		producer.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("main", fmt.Sprintf("Error closing database: %v", err), "graceful", "")
	}
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
}
