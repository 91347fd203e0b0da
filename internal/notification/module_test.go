package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	domainevents "seller_portal_backend/internal/events"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	confirmations []string
	reminders     []string
	err           error
}

func (f *fakeSender) SendBookingConfirmation(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	f.confirmations = append(f.confirmations, toEmail)
	return f.err
}

func (f *fakeSender) SendConsultationReminder(ctx context.Context, toEmail, inviteeName string, start time.Time, joinURL string) error {
	f.reminders = append(f.reminders, toEmail)
	return f.err
}

func TestMeetingBookedSendsConfirmation(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &fakeSender{}
	NewModule(bus, sender, log)

	event := domainevents.NewMeetingBooked(
		uuid.New(), uuid.New(), "evt_1", "Pat Seller", "pat@example.com",
		time.Now().Add(48*time.Hour), time.Now().Add(48*time.Hour+30*time.Minute), "",
	)
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("PublishSync() failed: %v", err)
	}

	if len(sender.confirmations) != 1 || sender.confirmations[0] != "pat@example.com" {
		t.Errorf("confirmations = %v, want one to pat@example.com", sender.confirmations)
	}
	if len(sender.reminders) != 0 {
		t.Errorf("unexpected reminders sent: %v", sender.reminders)
	}
}

func TestReminderDueSendsReminder(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &fakeSender{}
	NewModule(bus, sender, log)

	event := domainevents.NewMeetingReminderDue(
		uuid.New(), "Pat Seller", "pat@example.com", time.Now().Add(24*time.Hour), "",
	)
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("PublishSync() failed: %v", err)
	}

	if len(sender.reminders) != 1 {
		t.Errorf("reminders = %v, want exactly one", sender.reminders)
	}
}

func TestSendFailureDoesNotPropagate(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &fakeSender{err: errors.New("smtp down")}
	NewModule(bus, sender, log)

	event := domainevents.NewMeetingBooked(
		uuid.New(), uuid.New(), "evt_2", "Pat Seller", "pat@example.com",
		time.Now(), time.Now().Add(30*time.Minute), "",
	)
	if err := bus.PublishSync(context.Background(), event); err != nil {
		t.Fatalf("send failure leaked out of the notification module: %v", err)
	}
}
