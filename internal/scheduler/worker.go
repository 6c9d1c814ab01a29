package scheduler

import (
	"context"
	"fmt"
	"time"

	"autocrm_backend/internal/deals/repository"
	"autocrm_backend/internal/events"
	"autocrm_backend/platform/config"
	"autocrm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker consumes scheduled tasks and turns due follow-up reminders into
// domain events.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	deals  repository.Reader
	bus    events.Bus
	log    *logger.Logger
}

// NewWorker builds the asynq server and task handlers.
func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		deals:  repository.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskDealFollowUp, w.handleDealFollowUp)

	return w, nil
}

// Run starts the worker and blocks until shutdown.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// handleDealFollowUp fires a follow-up event if the deal is still open and
// the reminder was not rescheduled after this task was enqueued.
func (w *Worker) handleDealFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDealFollowUpPayload(task)
	if err != nil {
		return err
	}

	dealID, err := uuid.Parse(payload.DealID)
	if err != nil {
		return err
	}

	deal, err := w.deals.GetByID(ctx, dealID)
	if err != nil {
		// A deleted or unknown deal is not retryable.
		w.log.Warn("follow-up reminder for unknown deal", "deal", payload.DealID, "error", err)
		return nil
	}

	if !deal.Status.IsOpen() || deal.NextActionDate == nil {
		return nil
	}
	if deal.NextActionDate.After(time.Now().Add(time.Minute)) {
		// Rescheduled to a later date; the newer task will fire instead.
		return nil
	}

	nextAction := ""
	if deal.NextAction != nil {
		nextAction = *deal.NextAction
	}

	if w.bus != nil {
		w.bus.Publish(ctx, events.DealFollowUpDue{
			BaseEvent:  events.NewBaseEvent(),
			DealID:     deal.ID,
			AgentID:    deal.AgentID,
			NextAction: nextAction,
			DueAt:      deal.NextActionDate,
		})
	}

	w.log.Info("deal follow-up due", "deal", deal.ID, "agent", deal.AgentID)
	return nil
}
