// Package service implements the booking workflows: availability loading,
// slot re-validation and booking confirmation with local record keeping.
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"seller_portal_backend/internal/booking/calendar"
	domainevents "seller_portal_backend/internal/events"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/platform/apperr"
	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// availabilityWeeks is how far ahead the calendar is loaded.
	availabilityWeeks = 4
	// minNotice is the shortest lead time a slot may be booked with.
	minNotice = time.Minute
	// reminderLead is how long before the meeting the reminder goes out.
	reminderLead = 24 * time.Hour
)

// Tasks enqueues background work. It is nil-able: without a task backend the
// service falls back to inline goroutines.
type Tasks interface {
	EnqueueMeetingRecord(ctx context.Context, payload scheduler.MeetingRecordPayload) error
	ScheduleMeetingReminder(ctx context.Context, payload scheduler.MeetingReminderPayload, processAt time.Time) error
}

// Service implements the booking business logic.
type Service struct {
	provider calendar.Provider
	leads    LeadStore
	writer   *Writer
	tasks    Tasks
	bus      events.Bus
	cfg      config.SchedulingConfig
	log      *logger.Logger
	now      func() time.Time
}

// New creates a booking service. tasks may be nil when no task backend is
// configured.
func New(provider calendar.Provider, leads LeadStore, writer *Writer, tasks Tasks, bus events.Bus, cfg config.SchedulingConfig, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		leads:    leads,
		writer:   writer,
		tasks:    tasks,
		bus:      bus,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// EventType returns the meeting type, falling back to the configured default
// when no ID is given.
func (s *Service) EventType(ctx context.Context, id string) (*calendar.EventType, error) {
	id, err := s.resolveEventType(id)
	if err != nil {
		return nil, err
	}

	eventType, err := s.provider.EventType(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("event type not found")
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "scheduling provider unavailable", err)
	}
	return eventType, nil
}

// LoadAvailability fans out one request per week over the booking window and
// merges the results. A failed week degrades to no slots for that week rather
// than failing the whole calendar; only a fully failed fan-out is an error.
func (s *Service) LoadAvailability(ctx context.Context, eventTypeID string, from time.Time) ([]calendar.Slot, error) {
	eventTypeID, err := s.resolveEventType(eventTypeID)
	if err != nil {
		return nil, err
	}

	notBefore := s.now().Add(minNotice)
	if from.IsZero() || from.Before(notBefore) {
		from = notBefore
	}

	weekly := make([][]calendar.Slot, availabilityWeeks)
	failures := make([]bool, availabilityWeeks)

	g, gctx := errgroup.WithContext(ctx)
	for week := 0; week < availabilityWeeks; week++ {
		week := week
		start := from.Add(time.Duration(week) * 7 * 24 * time.Hour)
		end := start.Add(7 * 24 * time.Hour)

		g.Go(func() error {
			slots, err := s.provider.Availability(gctx, eventTypeID, start, end)
			if err != nil {
				s.log.Warn("availability week failed", "week", week, "error", err)
				failures[week] = true
				return nil
			}
			weekly[week] = slots
			return nil
		})
	}
	_ = g.Wait()

	allFailed := true
	for _, failed := range failures {
		if !failed {
			allFailed = false
			break
		}
	}
	if allFailed {
		return nil, apperr.Unavailable("scheduling provider unavailable")
	}

	seen := make(map[int64]bool)
	merged := make([]calendar.Slot, 0)
	for _, slots := range weekly {
		for _, slot := range slots {
			if slot.Start.Before(notBefore) {
				continue
			}
			key := slot.Start.UnixNano()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, slot)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	return merged, nil
}

// ValidateSlot re-checks a previously loaded slot against live availability.
// A slot starting inside the minimum notice window is invalid regardless of
// what the provider reports.
func (s *Service) ValidateSlot(ctx context.Context, eventTypeID string, start time.Time) (bool, error) {
	eventTypeID, err := s.resolveEventType(eventTypeID)
	if err != nil {
		return false, err
	}

	notBefore := s.now().Add(minNotice)
	if !start.After(notBefore) {
		return false, nil
	}

	slots, err := s.provider.Availability(ctx, eventTypeID, notBefore, start.Add(time.Minute))
	if err != nil {
		return false, apperr.Wrap(apperr.KindUnavailable, "scheduling provider unavailable", err)
	}

	for _, slot := range slots {
		if slot.Start.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

// BookInput carries a booking confirmation request.
type BookInput struct {
	EventTypeID     string
	LeadID          uuid.UUID
	Start           time.Time
	InviteeName     string
	InviteeEmail    string
	InviteePhone    string
	InviteeTimezone string
	Notes           string
	// Program labels which selling program the consultation is about, e.g.
	// the recommended option from the questionnaire.
	Program string
}

// BookResult is a confirmed booking plus the ID the local record will carry.
type BookResult struct {
	MeetingID uuid.UUID
	Booking   *calendar.Booking
}

// Book confirms the slot with the provider, queues the local meeting record
// and the reminder, and publishes MeetingBooked. The local record is written
// asynchronously; the provider confirmation is the source of truth.
func (s *Service) Book(ctx context.Context, input BookInput) (*BookResult, error) {
	eventTypeID, err := s.resolveEventType(input.EventTypeID)
	if err != nil {
		return nil, err
	}
	if !input.Start.After(s.now().Add(minNotice)) {
		return nil, apperr.Validation("slot start must be in the future")
	}

	exists, err := s.leads.Exists(ctx, input.LeadID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("lead not found")
	}

	booking, err := s.provider.Book(ctx, calendar.BookingRequest{
		EventTypeID:     eventTypeID,
		Start:           input.Start,
		InviteeName:     input.InviteeName,
		InviteeEmail:    input.InviteeEmail,
		InviteePhone:    input.InviteePhone,
		InviteeTimezone: input.InviteeTimezone,
		Notes:           input.Notes,
		TrackingContent: "lead:" + input.LeadID.String(),
	})
	if err != nil {
		if errors.Is(err, calendar.ErrSlotUnavailable) {
			return nil, apperr.Conflict("slot no longer available")
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "booking failed at scheduling provider", err)
	}

	meetingID := uuid.New()
	payload := scheduler.MeetingRecordPayload{
		MeetingID:         meetingID,
		LeadID:            input.LeadID,
		ProviderEventID:   booking.EventID,
		ProviderInviteeID: booking.InviteeID,
		EventTypeID:       eventTypeID,
		Program:           input.Program,
		InviteeName:       input.InviteeName,
		InviteeEmail:      input.InviteeEmail,
		InviteePhone:      input.InviteePhone,
		InviteeTimezone:   input.InviteeTimezone,
		Notes:             input.Notes,
		StartTime:         booking.Start,
		EndTime:           booking.End,
		LocationKind:      booking.LocationKind,
		LocationDetails:   booking.Location,
		JoinURL:           booking.JoinURL,
		CancelURL:         booking.CancelURL,
		RescheduleURL:     booking.RescheduleURL,
	}
	s.dispatchRecord(ctx, payload)
	s.scheduleReminder(ctx, payload)

	s.bus.Publish(ctx, domainevents.NewMeetingBooked(
		meetingID, input.LeadID, booking.EventID,
		input.InviteeName, input.InviteeEmail,
		booking.Start, booking.End, booking.JoinURL,
	))

	return &BookResult{MeetingID: meetingID, Booking: booking}, nil
}

// dispatchRecord hands the record to the task backend, falling back to an
// inline goroutine so a Redis outage never loses the meeting.
func (s *Service) dispatchRecord(ctx context.Context, payload scheduler.MeetingRecordPayload) {
	if s.tasks != nil {
		err := s.tasks.EnqueueMeetingRecord(ctx, payload)
		if err == nil {
			return
		}
		s.log.Error("failed to enqueue meeting record, writing inline", "error", err)
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		writeCtx, cancel := context.WithTimeout(detached, 30*time.Second)
		defer cancel()
		if err := s.writer.Record(writeCtx, payload); err != nil {
			s.log.Error("inline meeting record failed",
				"providerEventId", payload.ProviderEventID, "error", err)
		}
	}()
}

func (s *Service) scheduleReminder(ctx context.Context, payload scheduler.MeetingRecordPayload) {
	if s.tasks == nil {
		return
	}

	remindAt := payload.StartTime.Add(-reminderLead)
	if !remindAt.After(s.now()) {
		return
	}

	reminder := scheduler.MeetingReminderPayload{
		MeetingID:    payload.MeetingID,
		InviteeName:  payload.InviteeName,
		InviteeEmail: payload.InviteeEmail,
		StartTime:    payload.StartTime,
		JoinURL:      payload.JoinURL,
	}
	if err := s.tasks.ScheduleMeetingReminder(ctx, reminder, remindAt); err != nil {
		s.log.Error("failed to schedule meeting reminder", "meetingId", payload.MeetingID, "error", err)
	}
}

func (s *Service) resolveEventType(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if fallback := s.cfg.GetDefaultEventTypeID(); fallback != "" {
		return fallback, nil
	}
	return "", apperr.Validation("event type is required")
}
