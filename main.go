package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/api"
	"github.com/raf-aleaqarih/raf24-api/internal/cache"
	"github.com/raf-aleaqarih/raf24-api/internal/config"
	"github.com/raf-aleaqarih/raf24-api/internal/db"
	"github.com/raf-aleaqarih/raf24-api/internal/logging"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
	"github.com/raf-aleaqarih/raf24-api/internal/storage"
	"github.com/raf-aleaqarih/raf24-api/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background tasks), 'all' (default)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Environment, cfg.AppName)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	mongoClient, mongoDb, err := db.ConnectDB(cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.DisconnectDB(mongoClient); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	ctxIdx, cancelIdx := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctxIdx, mongoDb); err != nil {
		cancelIdx()
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}
	cancelIdx()

	redisClient, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			logger.Error("error disconnecting from Redis", zap.Error(err))
		}
	}()

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	taskClient := tasks.NewClient(redisClient)
	defer taskClient.Close()

	var wg sync.WaitGroup
	var apiSrv *http.Server

	logger.Info("starting", zap.String("mode", cfg.RunMode), zap.String("env", cfg.Environment))

	apiMode := func() {
		router := api.SetupRouter(cfg, mongoDb, redisClient, store, taskClient, logger)
		apiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: router,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("API listening", zap.String("port", cfg.ApiPort))
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("API server error", zap.Error(err))
			}
			logger.Info("API server stopped")
		}()
	}

	bgMode := func() {
		inquiryService := services.NewInquiryService(mongoDb)
		settingsService := services.NewSettingsService(mongoDb, nil, logger)
		processor := tasks.NewTaskProcessor(cfg, store, inquiryService, settingsService, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("background worker starting")
			if err := tasks.SetupServer(redisClient, processor, logger); err != nil {
				logger.Fatal("background worker error", zap.Error(err))
			}
			logger.Info("background worker stopped")
		}()
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		logger.Fatal("invalid run mode", zap.String("mode", cfg.RunMode))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if apiSrv != nil {
		if err := apiSrv.Shutdown(ctxShutdown); err != nil {
			logger.Error("API server shutdown error", zap.Error(err))
		}
	}
	// The asynq server stops when the process receives the same signal; it
	// installs its own handler inside Run.

	wg.Wait()
	logger.Info("shutdown complete")
}
