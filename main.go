package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorly/config"
	"tutorly/cron"
	"tutorly/database"
	"tutorly/database/repository"
	"tutorly/handlers"
	"tutorly/routes"
	"tutorly/services/earnings"
	"tutorly/services/schedule"
	"tutorly/services/student"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	store := openStore(logger)
	stateRepo := repository.NewStateRepo(store, logger)

	if config.AppConfig.SeedDemoData {
		if err := stateRepo.SeedDemoData(context.Background(), time.Now()); err != nil {
			logger.Warn("demo data seeding failed", zap.Error(err))
		}
	}

	// services.
	earningsService := earnings.NewEarningsService(stateRepo, logger)
	scheduleService := schedule.NewScheduleService(stateRepo, earningsService, logger)
	studentService := student.NewStudentService(stateRepo, logger)

	// handlers.
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, earningsService, logger)
	studentHandler := handlers.NewStudentHandler(studentService, earningsService, logger)
	earningsHandler := handlers.NewEarningsHandler(earningsService, logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.Register(router, scheduleHandler, studentHandler, earningsHandler)

	// Background accrual tick.
	worker := cron.NewAccrualWorker(earningsService, logger,
		time.Duration(config.AppConfig.AccrualIntervalSeconds)*time.Second)
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start accrual worker: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	worker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

// openStore selects the blob-store backend from configuration.
func openStore(logger *zap.Logger) database.Store {
	switch config.AppConfig.StorageBackend {
	case "redis":
		logger.Info("using redis store", zap.String("addr", config.AppConfig.RedisAddr))
		return database.NewRedisStore()
	case "memory":
		logger.Warn("using in-memory store; data will not survive restarts")
		return database.NewMemoryStore()
	default:
		logger.Info("using mongo store", zap.String("db", config.AppConfig.DatabaseName))
		database.InitDB()
		return database.NewMongoStore()
	}
}
