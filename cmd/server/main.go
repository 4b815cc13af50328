package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gsarma/judgerelay/internal/api"
	"github.com/gsarma/judgerelay/internal/code"
	"github.com/gsarma/judgerelay/internal/config"
	"github.com/gsarma/judgerelay/internal/events"
	"github.com/gsarma/judgerelay/internal/store"
	"github.com/gsarma/judgerelay/internal/submission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A database that is missing or down at startup is not fatal: the server
	// keeps serving and submissions fail when they try to persist.
	db, closeDB := openDB(ctx, logger, cfg.DatabaseURL)
	defer closeDB()

	opts := []submission.Option{
		submission.WithLogger(logger),
		submission.WithPollConfig(cfg.Poll),
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		opts = append(opts, submission.WithPublisher(events.NewRedisPublisher(rdb, cfg.RedisStream)))
		logger.Info("publishing completion events", "redis", cfg.RedisAddr)
	}

	svc := submission.NewService(code.NewJudge0Provider(cfg.Judge0), store.New(db), opts...)

	router := gin.Default()
	api.RegisterRoutes(router, svc, api.Options{
		StrictStatusCodes: cfg.StrictStatusCodes,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		Logger:            logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}

// openDB returns the pool when one can be configured, and an always-failing
// stand-in otherwise.
func openDB(ctx context.Context, logger *slog.Logger, url string) (store.DBTX, func()) {
	if url == "" {
		err := errors.New("DATABASE_URL is not set")
		logger.Error("error connecting to database", "error", err)
		return store.Unavailable(err), func() {}
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		return store.Unavailable(err), func() {}
	}

	if err := connectDB(ctx, pool); err != nil {
		logger.Error("error connecting to database", "error", err)
	} else {
		logger.Info("connected to database")
	}
	return pool, pool.Close
}

func connectDB(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return store.Migrate(ctx, pool)
}
