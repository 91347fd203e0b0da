package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Handlers holds the domain callbacks the worker dispatches to. The worker
// owns queue mechanics only; the semantics live with the callers that wire
// these functions.
type Handlers struct {
	RecordMeeting func(ctx context.Context, payload MeetingRecordPayload) error
	SendReminder  func(ctx context.Context, payload MeetingReminderPayload) error
}

// Worker consumes background tasks from Redis.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker creates a worker bound to the configured queue.
func NewWorker(cfg config.SchedulerConfig, handlers Handlers, log *logger.Logger) (*Worker, error) {
	opt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency <= 0 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("task failed", "type", task.Type(), "error", err)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMeetingRecord, func(ctx context.Context, task *asynq.Task) error {
		var payload MeetingRecordPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid meeting record payload: %v: %w", err, asynq.SkipRetry)
		}
		return handlers.RecordMeeting(ctx, payload)
	})
	mux.HandleFunc(TaskMeetingReminder, func(ctx context.Context, task *asynq.Task) error {
		var payload MeetingReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid meeting reminder payload: %v: %w", err, asynq.SkipRetry)
		}
		return handlers.SendReminder(ctx, payload)
	})

	return &Worker{server: server, mux: mux, log: log}, nil
}

// Run starts processing tasks and blocks until Shutdown is called.
func (w *Worker) Run() error {
	w.log.Info("task worker starting")
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
