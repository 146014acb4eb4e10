package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop/internal/config"
	"printshop/internal/handler"
	"printshop/internal/logger"
	"printshop/internal/metrics"
	"printshop/internal/migrations"
	"printshop/internal/ratelimit"
	"printshop/internal/repository"
	"printshop/internal/service"
	"printshop/internal/storage"
	"printshop/internal/utils"
	"printshop/internal/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// --- Migrations ---
	runner, err := migrations.New(cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure migrations")
	}
	if err := runner.Up(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.Session.Secret, cfg.Session.TTLHours)
	flashes := web.NewFlashStore(cfg.Session.Secret, cfg.Session.CookieSecure)
	appMetrics := metrics.New()

	docs, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, storage.NewPDFPageCounter())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to prepare upload directory")
	}

	limiter := newLoginLimiter(ctx, cfg)
	defer limiter.Close()

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	printJobRepo := repository.NewPrintJobRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, limiter)
	printJobService := service.NewPrintJobService(printJobRepo, docs, appMetrics)

	// --- Setup Gin Router ---
	router, err := handler.NewRouter(handler.RouterDeps{
		Auth:         authService,
		Jobs:         printJobService,
		JWT:          jwtUtil,
		Flashes:      flashes,
		Metrics:      appMetrics,
		DB:           dbPool,
		MaxUpload:    cfg.Uploads.MaxBytes,
		CookieSecure: cfg.Session.CookieSecure,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build router")
	}

	// --- Start Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exiting")
}

// newLoginLimiter prefers redis so attempts are shared between instances
func newLoginLimiter(ctx context.Context, cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if rl.RedisAddr == "" {
		return ratelimit.NewMemory(rl.MaxAttempts, rl.Window)
	}
	limiter, err := ratelimit.NewRedis(ctx, rl.RedisAddr, rl.RedisPassword, rl.RedisDB, rl.MaxAttempts, rl.Window)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory login limiter")
		return ratelimit.NewMemory(rl.MaxAttempts, rl.Window)
	}
	logger.Info().Str("addr", rl.RedisAddr).Msg("Using redis login limiter")
	return limiter
}
