package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller_portal_backend/internal/adapters"
	"seller_portal_backend/internal/booking"
	bookingservice "seller_portal_backend/internal/booking/service"
	"seller_portal_backend/internal/catalog"
	"seller_portal_backend/internal/email"
	apphttp "seller_portal_backend/internal/http"
	"seller_portal_backend/internal/http/router"
	"seller_portal_backend/internal/leads"
	"seller_portal_backend/internal/notification"
	"seller_portal_backend/internal/recommend"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/migrations"
	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/db"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
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

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	tasks, closeTasks := initTaskClient(cfg, log)
	if closeTasks != nil {
		defer closeTasks()
	}

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
		log.Info("smtp email sender initialized", "host", cfg.SMTPHost)
	} else {
		sender = email.NewNoopSender(log)
		log.Warn("email disabled; booking emails will be logged only")
	}

	registry, err := catalog.Load()
	if err != nil {
		log.Error("failed to load option catalog", "error", err)
		panic("failed to load option catalog: " + err.Error())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.NewModule(eventBus, sender, log)

	recommendModule := recommend.NewModule(registry, log)
	leadsModule := leads.NewModule(pool, eventBus, log)

	leadStore := adapters.NewLeadStore(leadsModule.Service)
	bookingModule := booking.NewModule(pool, leadStore, tasks, eventBus, cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			recommendModule,
			leadsModule,
			bookingModule,
		},
	}

	engine := router.Setup(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initTaskClient builds the asynq client when Redis is configured. Without it
// the booking module records meetings inline.
func initTaskClient(cfg config.SchedulerConfig, log *logger.Logger) (bookingservice.Tasks, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background tasks disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize task client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
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

	return errors.New(name + ": " + lastErr.Error())
}
