package scheduler

import (
	"context"
	"fmt"
	"time"

	opptransport "mobiauto_backend/internal/opportunities/transport"
	"mobiauto_backend/platform/config"
	"mobiauto_backend/platform/logger"

	"github.com/hibiken/asynq"
)

const defaultDistributeInterval = 15 * time.Minute

// Distributor is the slice of the opportunity service the worker needs.
type Distributor interface {
	Distribute(ctx context.Context) ([]opptransport.OpportunityResponse, error)
}

// Worker consumes distribution tasks and also registers the periodic
// schedule that produces them.
type Worker struct {
	server      *asynq.Server
	scheduler   *asynq.Scheduler
	mux         *asynq.ServeMux
	distributor Distributor
	log         *logger.Logger
}

// NewWorker creates the asynq server, handler mux and periodic scheduler.
func NewWorker(cfg config.SchedulerConfig, distributor Distributor, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	interval := cfg.GetDistributeInterval()
	if interval <= 0 {
		interval = defaultDistributeInterval
	}

	sched := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC})
	task, err := NewDistributeTask(DistributePayload{Source: "periodic"})
	if err != nil {
		return nil, err
	}
	if _, err := sched.Register(fmt.Sprintf("@every %s", interval), task); err != nil {
		return nil, fmt.Errorf("register distribute schedule: %w", err)
	}

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		scheduler:   sched,
		mux:         mux,
		distributor: distributor,
		log:         log,
	}
	mux.HandleFunc(TaskDistributeOpportunities, w.handleDistribute)

	return w, nil
}

func (w *Worker) handleDistribute(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDistributePayload(task)
	if err != nil {
		return err
	}

	opportunities, err := w.distributor.Distribute(ctx)
	if err != nil {
		w.log.Error("scheduled distribution failed", "source", payload.Source, "error", err)
		return err
	}

	w.log.Info("scheduled distribution completed",
		"source", payload.Source,
		"opportunities", len(opportunities),
	)
	return nil
}

// Run starts the scheduler and the task server, blocking until ctx ends.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.scheduler.Shutdown()
		w.server.Shutdown()
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.log.Error("distribution scheduler stopped", "error", err)
		}
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
