package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "noticeboard/internal/infra/adapter/persistence/postgres"
	"noticeboard/internal/infra/db"
	workerPkg "noticeboard/internal/infra/worker"
	"noticeboard/internal/usecase/schedule"
)

// waitForMigrations blocks until the API has applied the schema, so a
// worker started alongside a fresh database does not sweep against
// missing tables.
func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM announcements LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sweep_interval", workerConfig.SweepInterval),
		slog.Duration("sweep_timeout", workerConfig.SweepTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort))

	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := setupSweepService(logger, database, workerConfig)

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func setupSweepService(logger *slog.Logger, database *sql.DB, cfg *workerPkg.WorkerConfig) *schedule.Service {
	annRepo := pgRepo.NewAnnouncementRepo(database)
	guard := schedule.NewGuard(cfg.SweepInterval)
	return schedule.NewService(annRepo, guard, logger)
}

// startCronWorker runs the sweep on the configured cron schedule and blocks
// until SIGINT or SIGTERM. Each run gets its own timeout context; the
// service's throttle guard decides whether the run actually sweeps.
func startCronWorker(logger *slog.Logger, svc *schedule.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, health *workerPkg.HealthServer) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		os.Exit(1)
	}

	c := cron.New(cron.WithLocation(location))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
		defer cancel()

		start := time.Now()
		result, err := svc.RunSweep(runCtx, start)
		metrics.RecordJobDuration(time.Since(start).Seconds())
		if err != nil {
			metrics.RecordJobRun("failure")
			logger.Error("scheduled sweep failed", slog.Any("error", err))
			return
		}
		metrics.RecordJobRun("success")
		metrics.RecordTransitions(result.Published + result.TakenDown)
		metrics.RecordLastSuccess()
	})
	if err != nil {
		logger.Error("failed to schedule sweep job",
			slog.String("cron_schedule", cfg.CronSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}

	c.Start()
	health.SetReady(true)
	logger.Info("sweep worker started",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	health.SetReady(false)

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
		logger.Info("worker stopped")
	case <-time.After(cfg.SweepTimeout):
		logger.Warn("worker shutdown timed out with a sweep still running")
	}
}
