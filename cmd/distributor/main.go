package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobiauto_backend/internal/email"
	"mobiauto_backend/internal/events"
	opprepo "mobiauto_backend/internal/opportunities/repository"
	oppsvc "mobiauto_backend/internal/opportunities/service"
	"mobiauto_backend/internal/scheduler"
	usersadapter "mobiauto_backend/internal/users/adapter"
	usersrepo "mobiauto_backend/internal/users/repository"
	"mobiauto_backend/platform/config"
	"mobiauto_backend/platform/db"
	"mobiauto_backend/platform/distlock"
	"mobiauto_backend/platform/logger"

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
	log.Info("starting distributor", "env", cfg.Env, "interval", cfg.DistributeInterval)

	if cfg.RedisAddr == "" {
		panic("REDIS_ADDR is required for the distributor worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	sender := initEmailSender(cfg, log)
	email.NewNotifier(eventBus, sender, log)
	oppsvc.NewObserver(eventBus, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = redisClient.Close() }()

	// Same lock key as the API so manual and scheduled runs never overlap.
	runLock := distlock.New(redisClient, distributeLockKey, 30*time.Second)

	directory := usersadapter.NewDirectory(usersrepo.New(pool))
	distributor := oppsvc.New(opprepo.New(pool), directory, eventBus, runLock, log)

	worker, err := scheduler.NewWorker(cfg, distributor, log)
	if err != nil {
		log.Error("failed to initialize distributor worker", "error", err)
		panic("failed to initialize distributor worker: " + err.Error())
	}

	// Kick off one run immediately so pending opportunities do not wait a
	// full interval after a restart.
	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()
	if err := client.EnqueueDistribute(ctx, "startup"); err != nil {
		log.Warn("failed to enqueue startup distribution", "error", err)
	}

	worker.Run(ctx)
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
		return errors.New(name + ": invalid retry attempts")
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

	return errors.New(name + ": " + lastErr.Error())
}
