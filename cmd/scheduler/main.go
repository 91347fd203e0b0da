package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller_portal_backend/internal/adapters"
	bookingrepo "seller_portal_backend/internal/booking/repository"
	bookingservice "seller_portal_backend/internal/booking/service"
	"seller_portal_backend/internal/email"
	domainevents "seller_portal_backend/internal/events"
	leadsrepo "seller_portal_backend/internal/leads/repository"
	leadsservice "seller_portal_backend/internal/leads/service"
	"seller_portal_backend/internal/notification"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/db"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The scheduler binary consumes background tasks: it persists confirmed
// bookings and raises reminder events that the notification module turns
// into email. The API server enqueues; this process drains.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	if cfg.GetRedisURL() == "" {
		log.Error("REDIS_URL is required for the scheduler worker")
		panic("REDIS_URL is required for the scheduler worker")
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
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		sender = email.NewNoopSender(log)
		log.Warn("email disabled; reminder emails will be logged only")
	}
	notification.NewModule(eventBus, sender, log)

	leadsSvc := leadsservice.New(leadsrepo.New(pool), eventBus, log)
	writer := bookingservice.NewWriter(adapters.NewLeadStore(leadsSvc), bookingrepo.New(pool), log)

	handlers := scheduler.Handlers{
		RecordMeeting: writer.Record,
		SendReminder: func(ctx context.Context, payload scheduler.MeetingReminderPayload) error {
			event := domainevents.NewMeetingReminderDue(
				payload.MeetingID,
				payload.InviteeName,
				payload.InviteeEmail,
				payload.StartTime,
				payload.JoinURL,
			)
			return eventBus.PublishSync(ctx, event)
		},
	}

	worker, err := scheduler.NewWorker(cfg, handlers, log)
	if err != nil {
		log.Error("failed to initialize task worker", "error", err)
		panic("failed to initialize task worker: " + err.Error())
	}

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- worker.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	case err := <-workerErr:
		if err != nil {
			log.Error("worker error", "error", err)
			panic("worker error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
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
	return lastErr
}
