package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"noticeboard/internal/common/pagination"
	pgRepo "noticeboard/internal/infra/adapter/persistence/postgres"
	"noticeboard/internal/infra/db"
	"noticeboard/internal/observability/tracing"
	"noticeboard/internal/resilience/circuitbreaker"

	annUC "noticeboard/internal/usecase/announcement"
	catUC "noticeboard/internal/usecase/category"
	revUC "noticeboard/internal/usecase/revision"
	"noticeboard/internal/usecase/schedule"

	hhttp "noticeboard/internal/handler/http"
	"noticeboard/internal/handler/http/admin"
	hann "noticeboard/internal/handler/http/announcement"
	hauth "noticeboard/internal/handler/http/auth"
	hcat "noticeboard/internal/handler/http/category"
	"noticeboard/internal/handler/http/requestid"
	hrev "noticeboard/internal/handler/http/revision"
)

func main() {
	logger := initLogger()
	validateAdminCredentials(logger)
	validateEditorCredentials(logger)
	validateJWTSecret(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler := setupRoutes(logger, database, version)

	runServer(logger, handler, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
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

// validateAdminCredentials validates the admin credentials at startup.
// This prevents the server from starting with empty or weak admin credentials.
func validateAdminCredentials(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// validateEditorCredentials validates the editor credentials at startup.
// Unlike admin validation, this implements graceful degradation: if the
// editor account is misconfigured it is disabled and the application
// continues in admin-only mode.
func validateEditorCredentials(logger *slog.Logger) {
	hauth.ValidateEditorCredentials(logger)
}

// validateJWTSecret validates the JWT_SECRET environment variable for security requirements.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupRoutes wires repositories, services, and handlers into the complete
// HTTP handler. Public endpoints (token issuance, health, metrics) bypass
// authorization; everything else goes through the role-based Authz
// middleware.
func setupRoutes(logger *slog.Logger, database *sql.DB, version string) http.Handler {
	// All repository access goes through the circuit breaker so a dying
	// database sheds load fast instead of piling up blocked queries.
	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	annRepo := pgRepo.NewAnnouncementRepo(breaker)
	revRepo := pgRepo.NewRevisionRepo(breaker)
	catRepo := pgRepo.NewCategoryRepo(breaker)

	catSvc := catUC.NewService(catRepo, logger)
	revSvc := revUC.NewService(annRepo, revRepo, logger)
	annSvc := annUC.NewService(annRepo, catRepo, revSvc, logger)
	sweepSvc := schedule.NewService(annRepo, schedule.NewGuard(60*time.Second), logger)

	paginationCfg := pagination.DefaultConfig()

	// Public endpoints: no authentication required.
	publicMux := http.NewServeMux()
	publicMux.Handle("POST /auth/token", hauth.TokenHandler(hauth.DefaultEnvProvider()))
	publicMux.Handle("GET /healthz", &hhttp.HealthHandler{DB: database, Version: version})
	publicMux.Handle("GET /ready", &hhttp.ReadinessHandler{DB: database})
	publicMux.HandleFunc("GET /live", hhttp.LivenessHandler)
	publicMux.Handle("GET /metrics", promhttp.Handler())

	// Private endpoints: wrapped in role-based authorization.
	privateMux := http.NewServeMux()
	hann.Register(privateMux, annSvc, paginationCfg, logger)
	hrev.Register(privateMux, revSvc, paginationCfg, logger)
	hcat.Register(privateMux, catSvc)
	admin.NewSweepHandler(sweepSvc, logger).Register(privateMux)
	protected := hauth.Authz(privateMux)

	rootMux := http.NewServeMux()
	rootMux.Handle("/auth/", publicMux)
	rootMux.Handle("/healthz", publicMux)
	rootMux.Handle("/ready", publicMux)
	rootMux.Handle("/live", publicMux)
	rootMux.Handle("/metrics", publicMux)
	rootMux.Handle("/", protected)

	return hhttp.Chain(rootMux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.Metrics,
		hhttp.LimitRequestBody(1<<20), // 1MB limit
	)
}

func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info("shutting down server...")
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
