package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues background tasks onto Redis.
type Client struct {
	client *asynq.Client
	queue  string
	log    *logger.Logger
}

// NewClient creates a task client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig, log *logger.Logger) (*Client, error) {
	opt, err := redisConnOpt(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  cfg.GetAsynqQueueName(),
		log:    log,
	}, nil
}

// EnqueueMeetingRecord queues persistence of a confirmed booking. The task is
// retried on failure; duplicate deliveries are absorbed by the database
// uniqueness constraint on the provider event ID.
func (c *Client) EnqueueMeetingRecord(ctx context.Context, payload MeetingRecordPayload) error {
	task, err := NewMeetingRecordTask(payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue meeting record: %w", err)
	}

	c.log.Info("enqueued meeting record task", "taskId", info.ID, "meetingId", payload.MeetingID)
	return nil
}

// ScheduleMeetingReminder queues the reminder to run at the given time.
func (c *Client) ScheduleMeetingReminder(ctx context.Context, payload MeetingReminderPayload, processAt time.Time) error {
	task, err := NewMeetingReminderTask(payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.ProcessAt(processAt),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule meeting reminder: %w", err)
	}

	c.log.Info("scheduled meeting reminder", "taskId", info.ID, "meetingId", payload.MeetingID, "processAt", processAt)
	return nil
}

// Close releases the underlying Redis connections.
func (c *Client) Close() error {
	return c.client.Close()
}

func redisConnOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("REDIS_URL is required for the task scheduler")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if cfg.GetRedisTLSInsecure() {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if cfg.GetRedisTLSInsecure() {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
