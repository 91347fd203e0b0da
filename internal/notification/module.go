// Package notification sends email in response to domain events. Delivery is
// best effort: a failed send is logged and never fails the operation that
// raised the event.
package notification

import (
	"context"

	"seller_portal_backend/internal/email"
	domainevents "seller_portal_backend/internal/events"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"
)

// Module subscribes to booking events and sends the matching email.
type Module struct {
	sender email.Sender
	log    *logger.Logger
}

// NewModule creates the notification module and registers its subscriptions.
func NewModule(bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	m := &Module{sender: sender, log: log}

	bus.Subscribe(domainevents.MeetingBookedName, events.HandlerFunc(m.onMeetingBooked))
	bus.Subscribe(domainevents.MeetingReminderDueName, events.HandlerFunc(m.onMeetingReminderDue))

	return m
}

func (m *Module) onMeetingBooked(ctx context.Context, event events.Event) error {
	e, ok := event.(domainevents.MeetingBooked)
	if !ok {
		return nil
	}

	if err := m.sender.SendBookingConfirmation(ctx, e.InviteeEmail, e.InviteeName, e.StartTime, e.JoinURL); err != nil {
		m.log.Error("failed to send booking confirmation",
			"meetingId", e.MeetingID, "to", e.InviteeEmail, "error", err)
	}
	return nil
}

func (m *Module) onMeetingReminderDue(ctx context.Context, event events.Event) error {
	e, ok := event.(domainevents.MeetingReminderDue)
	if !ok {
		return nil
	}

	if err := m.sender.SendConsultationReminder(ctx, e.InviteeEmail, e.InviteeName, e.StartTime, e.JoinURL); err != nil {
		m.log.Error("failed to send consultation reminder",
			"meetingId", e.MeetingID, "to", e.InviteeEmail, "error", err)
	}
	return nil
}
