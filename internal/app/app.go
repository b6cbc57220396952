// Package app assembles the service from its configuration and runs it until
// the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/vadimbarashkov/shortlink/internal/adapter/cache/redis"
	"github.com/vadimbarashkov/shortlink/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/shortlink/internal/config"
	"github.com/vadimbarashkov/shortlink/internal/ratelimit"
	"github.com/vadimbarashkov/shortlink/internal/shortcode"
	"github.com/vadimbarashkov/shortlink/internal/stats"
	"github.com/vadimbarashkov/shortlink/internal/usecase"

	delivery "github.com/vadimbarashkov/shortlink/internal/adapter/delivery/http"
	pgpool "github.com/vadimbarashkov/shortlink/pkg/postgres"
	redisclient "github.com/vadimbarashkov/shortlink/pkg/redis"
)

const serviceName = "url-shortener"

const shutdownTimeout = 10 * time.Second

func newLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
		QuietDownRoutes:  []string{"/health", "/api/v1/ping"},
		QuietDownPeriod:  10 * time.Second,
	}

	if env != config.EnvDev {
		opts.LogLevel = slog.LevelInfo
		opts.JSON = true
		opts.Concise = false
		opts.Tags = map[string]string{"env": env}
	}

	return httplog.NewLogger(serviceName, opts)
}

func newLimiter(cfg config.RateLimit, client goredis.Scripter) ratelimit.Limiter {
	if cfg.Backend == config.RateLimitBackendMemory {
		return ratelimit.NewMemoryLimiter(cfg.Requests, cfg.Window)
	}

	return ratelimit.NewRedisLimiter(client, cfg.Requests, cfg.Window)
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := newLogger(cfg.Env)

	db, err := pgpool.New(
		ctx,
		cfg.Postgres.DSN(),
		pgpool.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgpool.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgpool.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgpool.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pgpool.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	rdb, err := redisclient.New(
		ctx,
		cfg.Redis.Addr(),
		redisclient.WithPassword(cfg.Redis.Password),
		redisclient.WithDB(cfg.Redis.DB),
		redisclient.WithPoolSize(cfg.Redis.PoolSize),
		redisclient.WithDialTimeout(cfg.Redis.DialTimeout),
		redisclient.WithReadTimeout(cfg.Redis.ReadTimeout),
		redisclient.WithWriteTimeout(cfg.Redis.WriteTimeout),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	defer rdb.Close()

	urlRepo := postgres.NewURLRepository(db)
	urlCache := redis.NewURLCache(rdb, cfg.Cache.TTL)

	codeGen := shortcode.New(urlRepo,
		shortcode.WithLength(cfg.ShortCode.Length),
		shortcode.WithMaxAttempts(cfg.ShortCode.MaxAttempts),
	)

	recorder := stats.NewRecorder(urlRepo, logger.Logger,
		stats.WithWorkers(cfg.Stats.Workers),
		stats.WithQueueSize(cfg.Stats.QueueSize),
		stats.WithTimeout(cfg.Stats.Timeout),
	)

	urlUseCase := usecase.NewURLUseCase(urlRepo, urlCache, codeGen, recorder, logger.Logger)
	limiter := newLimiter(cfg.RateLimit, rdb)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        delivery.NewRouter(logger, urlUseCase, limiter),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return recorder.Run(ctx)
	})

	g.Go(func() error {
		var err error

		logger.Info("starting server",
			slog.String("addr", server.Addr),
			slog.String("env", cfg.Env),
			slog.String("rate_limit_backend", cfg.RateLimit.Backend),
		)

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
