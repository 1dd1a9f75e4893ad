// Package scheduler runs the periodic opportunity distribution through asynq.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"mobiauto_backend/platform/config"

	"github.com/hibiken/asynq"
)

// Client enqueues distribution tasks on demand.
type Client struct {
	client *asynq.Client
}

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{client: asynq.NewClient(opt)}, nil
}

// Close releases the underlying Redis connections.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDistribute schedules an immediate distribution run.
func (c *Client) EnqueueDistribute(ctx context.Context, source string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDistributeTask(DistributePayload{
		TriggeredAt: time.Now().UTC(),
		Source:      source,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task)
	return err
}

func redisClientOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	addr := cfg.GetRedisAddr()
	if addr == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis address not configured")
	}
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: cfg.GetRedisPassword(),
	}, nil
}
