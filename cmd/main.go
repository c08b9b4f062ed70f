package main

import (
	"context"
	"credit-engine/internal/api"
	"credit-engine/internal/app"
	"credit-engine/internal/batch"
	"credit-engine/internal/config"
	"credit-engine/internal/infrastructure/logging"
	"credit-engine/internal/ingest"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	defaultScoreSchedule = "0 3 * * *"
	defaultScoreTimeout  = 30 * time.Minute
	defaultIngestTimeout = time.Hour
)

// @title Credit Engine API
// @version 1.0
// @description Credit scoring and loan eligibility service.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	redisClient := initializeRedisClient(cfg, logger)
	publishers, rabbitMQConn := app.SetupPublishers(cfg.RabbitMQ, logger)
	components := app.Build(cfg, dbPool, publishers, logger)

	scoreJob := batch.NewRecalculateScoresJob(components.CustomerService, components.CreditService, cfg.Batch.ScoreWorkers, logger)
	ingestJob := batch.NewIngestJob(components.Ingester, ingest.DatasetAll, logger)
	cronScheduler := startBatchJobs(cfg, logger, scoreJob, ingestJob)

	routerCtx, stopRouter := context.WithCancel(context.Background())
	defer stopRouter()
	router := api.SetupRouter(routerCtx, api.Services{
		Customers: components.CustomerService,
		Loans:     components.LoanService,
		Credit:    components.CreditService,
		Health:    dbPool,
		Redis:     redisClient,
	}, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := app.ConnectDatabase(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return dbPool
}

// initializeRedisClient falls back to the in-process limiter when Redis is
// configured but unreachable.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	rdb, err := app.ConnectRedis(context.Background(), cfg.Redis, logger)
	if err != nil {
		logger.Error("Redis unavailable, using in-process rate limiter", "error", err)
		return nil
	}
	return rdb
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Server.Port)
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitMQConn *amqp.Connection, redisClient *redis.Client, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	if rabbitMQConn != nil {
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitMQConn.Close(); err != nil {
			logger.Warn("RabbitMQ close failed", "error", err)
		}
	}

	if redisClient != nil {
		logger.Info("Closing Redis client...")
		if err := redisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

// scheduledJob adapts a batch job to cron with its own timeout.
func scheduledJob(logger *slog.Logger, name string, timeout time.Duration, run func(ctx context.Context) error) cron.Job {
	return cron.FuncJob(func() {
		jobLogger := logger.With("job_name", name)
		jobLogger.Info("Cron triggered job.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := run(ctx); err != nil {
			jobLogger.Error("Job finished with error", slog.Any("error", err))
			return
		}
		jobLogger.Info("Job finished successfully.")
	})
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, scoreJob *batch.RecalculateScoresJob, ingestJob *batch.IngestJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New(cron.WithLocation(cfg.Scoring.Location()))

	scoreSchedule := cfg.Batch.ScoreSchedule
	if scoreSchedule == "" {
		scoreSchedule = defaultScoreSchedule
		logger.Warn("Score recalculation schedule not configured, using default", "schedule", scoreSchedule)
	}
	scoreTimeout := cfg.Batch.ScoreTimeout
	if scoreTimeout <= 0 {
		scoreTimeout = defaultScoreTimeout
	}
	scoreRun := func(ctx context.Context) error {
		_, err := scoreJob.Run(ctx)
		return err
	}
	if jobID, err := c.AddJob(scoreSchedule, scheduledJob(logger, "RecalculateScores", scoreTimeout, scoreRun)); err != nil {
		logger.Error("Failed to schedule score recalculation job", "schedule", scoreSchedule, slog.Any("error", err))
	} else {
		logger.Info("Scheduled score recalculation job", "schedule", scoreSchedule, "job_id", jobID)
	}

	if ingestSchedule := cfg.Batch.IngestSchedule; ingestSchedule != "" {
		ingestTimeout := cfg.Batch.IngestTimeout
		if ingestTimeout <= 0 {
			ingestTimeout = defaultIngestTimeout
		}
		if jobID, err := c.AddJob(ingestSchedule, scheduledJob(logger, "Ingest", ingestTimeout, ingestJob.Run)); err != nil {
			logger.Error("Failed to schedule ingestion job", "schedule", ingestSchedule, slog.Any("error", err))
		} else {
			logger.Info("Scheduled ingestion job", "schedule", ingestSchedule, "job_id", jobID)
		}
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
