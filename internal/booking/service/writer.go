package service

import (
	"context"

	"seller_portal_backend/internal/booking/repository"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the slice of the leads module the writer needs.
type LeadStore interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	MarkContacted(ctx context.Context, id uuid.UUID) error
}

// MeetingStore persists meeting records.
type MeetingStore interface {
	Insert(ctx context.Context, meeting *repository.Meeting) (bool, error)
}

// Writer records confirmed provider bookings. It is safe to run the same
// payload any number of times: the provider event ID uniqueness constraint
// turns replays into no-ops.
type Writer struct {
	leads    LeadStore
	meetings MeetingStore
	log      *logger.Logger
}

// NewWriter creates a meeting writer.
func NewWriter(leads LeadStore, meetings MeetingStore, log *logger.Logger) *Writer {
	return &Writer{leads: leads, meetings: meetings, log: log}
}

// Record persists the meeting and moves the lead to contacted. A missing lead
// aborts without error: the booking happened at the provider regardless, and
// retrying cannot make the lead appear. Lead status is best effort; a failure
// there never invalidates the recorded meeting.
func (w *Writer) Record(ctx context.Context, payload scheduler.MeetingRecordPayload) error {
	exists, err := w.leads.Exists(ctx, payload.LeadID)
	if err != nil {
		return err
	}
	if !exists {
		w.log.Warn("meeting recorded for unknown lead, dropping",
			"leadId", payload.LeadID, "providerEventId", payload.ProviderEventID)
		return nil
	}

	meeting := &repository.Meeting{
		ID:                payload.MeetingID,
		LeadID:            payload.LeadID,
		ProviderEventID:   payload.ProviderEventID,
		ProviderInviteeID: optional(payload.ProviderInviteeID),
		EventTypeID:       payload.EventTypeID,
		Program:           optional(payload.Program),
		InviteeName:       payload.InviteeName,
		InviteeEmail:      payload.InviteeEmail,
		InviteePhone:      optional(payload.InviteePhone),
		InviteeTimezone:   optional(payload.InviteeTimezone),
		Notes:             optional(payload.Notes),
		StartTime:         payload.StartTime,
		EndTime:           payload.EndTime,
		LocationKind:      optional(payload.LocationKind),
		LocationDetails:   optional(payload.LocationDetails),
		JoinURL:           optional(payload.JoinURL),
		CancelURL:         optional(payload.CancelURL),
		RescheduleURL:     optional(payload.RescheduleURL),
		Status:            repository.StatusScheduled,
	}

	inserted, err := w.meetings.Insert(ctx, meeting)
	if err != nil {
		return err
	}
	if !inserted {
		w.log.Info("meeting already recorded", "providerEventId", payload.ProviderEventID)
		return nil
	}

	if err := w.leads.MarkContacted(ctx, payload.LeadID); err != nil {
		w.log.Error("failed to mark lead contacted", "leadId", payload.LeadID, "error", err)
	}
	return nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
