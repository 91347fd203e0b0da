// Package email sends transactional email for booking notifications.
package email

import (
	"context"
	"time"

	"seller_portal_backend/platform/logger"
)

// Sender delivers booking-related email.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error
	SendConsultationReminder(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error
}

// NoopSender is used when no SMTP server is configured. It logs instead of
// sending so local development works without mail infrastructure.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a NoopSender.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

// SendBookingConfirmation logs the confirmation instead of sending it.
func (s *NoopSender) SendBookingConfirmation(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	s.log.Info("email disabled, skipping booking confirmation", "to", toEmail, "start", start)
	return nil
}

// SendConsultationReminder logs the reminder instead of sending it.
func (s *NoopSender) SendConsultationReminder(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	s.log.Info("email disabled, skipping consultation reminder", "to", toEmail, "start", start)
	return nil
}
