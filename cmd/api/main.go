package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobiauto_backend/internal/auth"
	"mobiauto_backend/internal/dealerships"
	"mobiauto_backend/internal/email"
	"mobiauto_backend/internal/events"
	apphttp "mobiauto_backend/internal/http"
	"mobiauto_backend/internal/opportunities"
	oppsvc "mobiauto_backend/internal/opportunities/service"
	"mobiauto_backend/internal/users"
	"mobiauto_backend/migrations"
	"mobiauto_backend/platform/config"
	"mobiauto_backend/platform/db"
	"mobiauto_backend/platform/distlock"
	"mobiauto_backend/platform/logger"
	"mobiauto_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const distributeLockKey = "opportunities:distribute:lock"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	runLock, closeRedis := initRunLock(cfg, log)
	if closeRedis != nil {
		defer closeRedis()
	}

	sender := initEmailSender(cfg, log)
	email.NewNotifier(eventBus, sender, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	usersModule := users.NewModule(pool, val, log)
	dealershipsModule := dealerships.NewModule(pool, val, log)
	opportunitiesModule := opportunities.NewModule(pool, usersModule.Directory(), eventBus, runLock, val, log)
	authModule := auth.NewModule(usersModule.Service(), cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: pool,
		Modules: []apphttp.Module{
			authModule,
			usersModule,
			dealershipsModule,
			opportunitiesModule,
		},
	}

	engine := apphttp.NewRouter(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRunLock builds the Redis-backed distribution lock. Without Redis the
// engine falls back to unserialized runs.
func initRunLock(cfg config.RedisConfig, log *logger.Logger) (oppsvc.RunLock, func()) {
	if cfg.GetRedisAddr() == "" {
		log.Warn("REDIS_ADDR not configured; distribution runs are not serialized")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
	})

	lock := distlock.New(client, distributeLockKey, 30*time.Second)
	return lock, func() {
		_ = client.Close()
	}
}

func initEmailSender(cfg config.EmailConfig, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP not configured; assignment emails disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s: %w", name, lastErr)
}
