package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"seller_portal_backend/internal/booking/calendar"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/platform/apperr"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeCfg struct{}

func (fakeCfg) GetSchedulingAPIURL() string           { return "http://provider.test" }
func (fakeCfg) GetSchedulingAPIToken() string         { return "" }
func (fakeCfg) GetSchedulingTimeout() time.Duration   { return 5 * time.Second }
func (fakeCfg) GetDefaultEventTypeID() string         { return "consult-30" }

type availabilityCall struct {
	from, to time.Time
}

type fakeProvider struct {
	mu           sync.Mutex
	calls        []availabilityCall
	availability func(from, to time.Time) ([]calendar.Slot, error)
	bookErr      error
	booked       []calendar.BookingRequest
	booking      *calendar.Booking
}

func (f *fakeProvider) EventType(ctx context.Context, id string) (*calendar.EventType, error) {
	return &calendar.EventType{ID: id, Name: "Consultation", DurationMinutes: 30}, nil
}

func (f *fakeProvider) Availability(ctx context.Context, eventTypeID string, from, to time.Time) ([]calendar.Slot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, availabilityCall{from: from, to: to})
	f.mu.Unlock()
	return f.availability(from, to)
}

func (f *fakeProvider) Book(ctx context.Context, req calendar.BookingRequest) (*calendar.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.booked = append(f.booked, req)
	return f.booking, nil
}

type fakeTasks struct {
	records     []scheduler.MeetingRecordPayload
	recordErr   error
	reminders   []scheduler.MeetingReminderPayload
	reminderAts []time.Time
}

func (f *fakeTasks) EnqueueMeetingRecord(ctx context.Context, payload scheduler.MeetingRecordPayload) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.records = append(f.records, payload)
	return nil
}

func (f *fakeTasks) ScheduleMeetingReminder(ctx context.Context, payload scheduler.MeetingReminderPayload, processAt time.Time) error {
	f.reminders = append(f.reminders, payload)
	f.reminderAts = append(f.reminderAts, processAt)
	return nil
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(provider *fakeProvider, leads *fakeLeads, meetings *fakeMeetings, tasks Tasks) *Service {
	log := logger.New("development")
	writer := NewWriter(leads, meetings, log)
	svc := New(provider, leads, writer, tasks, events.NewInMemoryBus(log), fakeCfg{}, log)
	svc.now = func() time.Time { return testNow }
	return svc
}

func slotAt(t time.Time) calendar.Slot {
	return calendar.Slot{Start: t}
}

func TestLoadAvailabilityMergesAndDedupes(t *testing.T) {
	week0 := testNow.Add(24 * time.Hour)
	week1 := testNow.Add(8 * 24 * time.Hour)

	provider := &fakeProvider{
		availability: func(from, to time.Time) ([]calendar.Slot, error) {
			// The shared slot shows up in two adjacent windows.
			if from.Before(testNow.Add(7 * 24 * time.Hour)) {
				return []calendar.Slot{slotAt(week1), slotAt(week0)}, nil
			}
			return []calendar.Slot{slotAt(week1)}, nil
		},
	}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	slots, err := svc.LoadAvailability(context.Background(), "", time.Time{})
	if err != nil {
		t.Fatalf("LoadAvailability() failed: %v", err)
	}

	if len(provider.calls) != availabilityWeeks {
		t.Errorf("provider called %d times, want %d", len(provider.calls), availabilityWeeks)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2 after dedupe", len(slots))
	}
	if !slots[0].Start.Equal(week0) || !slots[1].Start.Equal(week1) {
		t.Errorf("slots not sorted ascending: %v", slots)
	}
}

func TestLoadAvailabilityDegradesOnPartialFailure(t *testing.T) {
	goodSlot := testNow.Add(48 * time.Hour)
	provider := &fakeProvider{
		availability: func(from, to time.Time) ([]calendar.Slot, error) {
			if from.After(testNow.Add(7 * 24 * time.Hour)) {
				return nil, errors.New("upstream 502")
			}
			return []calendar.Slot{slotAt(goodSlot)}, nil
		},
	}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	slots, err := svc.LoadAvailability(context.Background(), "", time.Time{})
	if err != nil {
		t.Fatalf("partial failure should not fail the calendar: %v", err)
	}
	if len(slots) != 1 || !slots[0].Start.Equal(goodSlot) {
		t.Errorf("slots = %v, want the surviving week's slot", slots)
	}
}

func TestLoadAvailabilityFailsWhenAllWeeksFail(t *testing.T) {
	provider := &fakeProvider{
		availability: func(from, to time.Time) ([]calendar.Slot, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	_, err := svc.LoadAvailability(context.Background(), "", time.Time{})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestLoadAvailabilityFiltersPastSlots(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(26 * time.Hour)
	provider := &fakeProvider{
		availability: func(from, to time.Time) ([]calendar.Slot, error) {
			return []calendar.Slot{slotAt(past), slotAt(future)}, nil
		},
	}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	slots, err := svc.LoadAvailability(context.Background(), "", time.Time{})
	if err != nil {
		t.Fatalf("LoadAvailability() failed: %v", err)
	}
	for _, slot := range slots {
		if slot.Start.Before(testNow) {
			t.Errorf("past slot %v not filtered", slot.Start)
		}
	}
}

func TestValidateSlot(t *testing.T) {
	available := testNow.Add(72 * time.Hour)
	provider := &fakeProvider{
		availability: func(from, to time.Time) ([]calendar.Slot, error) {
			return []calendar.Slot{slotAt(available)}, nil
		},
	}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	valid, err := svc.ValidateSlot(context.Background(), "", available)
	if err != nil {
		t.Fatalf("ValidateSlot() failed: %v", err)
	}
	if !valid {
		t.Error("live slot reported invalid")
	}

	valid, err = svc.ValidateSlot(context.Background(), "", available.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("ValidateSlot() failed: %v", err)
	}
	if valid {
		t.Error("missing slot reported valid")
	}

	// Slots inside the notice window are rejected without a provider call.
	before := len(provider.calls)
	valid, err = svc.ValidateSlot(context.Background(), "", testNow.Add(30*time.Second))
	if err != nil {
		t.Fatalf("ValidateSlot() failed: %v", err)
	}
	if valid {
		t.Error("slot inside notice window reported valid")
	}
	if len(provider.calls) != before {
		t.Error("provider queried for a slot inside the notice window")
	}
}

func bookInput(leadID uuid.UUID, start time.Time) BookInput {
	return BookInput{
		LeadID:       leadID,
		Start:        start,
		InviteeName:  "Pat Seller",
		InviteeEmail: "pat@example.com",
		InviteePhone: "+15551234567",
		Notes:        "prefers afternoon",
	}
}

func TestBookSuccessEnqueuesRecordAndReminder(t *testing.T) {
	start := testNow.Add(72 * time.Hour)
	end := start.Add(30 * time.Minute)
	leadID := uuid.New()

	provider := &fakeProvider{
		booking: &calendar.Booking{
			EventID: "evt_xyz",
			Start:   start,
			End:     end,
			JoinURL: "https://meet.example.com/evt_xyz",
		},
	}
	tasks := &fakeTasks{}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, tasks)

	result, err := svc.Book(context.Background(), bookInput(leadID, start))
	if err != nil {
		t.Fatalf("Book() failed: %v", err)
	}

	if result.Booking.EventID != "evt_xyz" {
		t.Errorf("booking event id = %q, want evt_xyz", result.Booking.EventID)
	}
	if len(provider.booked) != 1 {
		t.Fatalf("provider booked %d times, want 1", len(provider.booked))
	}
	if want := "lead:" + leadID.String(); provider.booked[0].TrackingContent != want {
		t.Errorf("tracking content = %q, want %q", provider.booked[0].TrackingContent, want)
	}

	if len(tasks.records) != 1 {
		t.Fatalf("enqueued %d record tasks, want 1", len(tasks.records))
	}
	record := tasks.records[0]
	if record.MeetingID != result.MeetingID {
		t.Errorf("record meeting id = %s, want %s", record.MeetingID, result.MeetingID)
	}
	if record.ProviderEventID != "evt_xyz" {
		t.Errorf("record provider event id = %q, want evt_xyz", record.ProviderEventID)
	}

	if len(tasks.reminders) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(tasks.reminders))
	}
	if want := start.Add(-24 * time.Hour); !tasks.reminderAts[0].Equal(want) {
		t.Errorf("reminder at %v, want %v", tasks.reminderAts[0], want)
	}
}

func TestBookSlotConflictMapsToConflict(t *testing.T) {
	provider := &fakeProvider{bookErr: calendar.ErrSlotUnavailable}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	_, err := svc.Book(context.Background(), bookInput(uuid.New(), testNow.Add(48*time.Hour)))
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestBookUnknownLeadRejected(t *testing.T) {
	provider := &fakeProvider{booking: &calendar.Booking{EventID: "evt_1"}}
	svc := newTestService(provider, &fakeLeads{exists: false}, &fakeMeetings{}, &fakeTasks{})

	_, err := svc.Book(context.Background(), bookInput(uuid.New(), testNow.Add(48*time.Hour)))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(provider.booked) != 0 {
		t.Error("provider booking attempted for unknown lead")
	}
}

func TestBookPastSlotRejected(t *testing.T) {
	provider := &fakeProvider{booking: &calendar.Booking{EventID: "evt_1"}}
	svc := newTestService(provider, &fakeLeads{exists: true}, &fakeMeetings{}, &fakeTasks{})

	_, err := svc.Book(context.Background(), bookInput(uuid.New(), testNow.Add(-time.Hour)))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestBookFallsBackToInlineRecordWithoutTasks(t *testing.T) {
	start := testNow.Add(72 * time.Hour)
	provider := &fakeProvider{
		booking: &calendar.Booking{EventID: "evt_inline", Start: start, End: start.Add(30 * time.Minute)},
	}
	meetings := &fakeMeetings{done: make(chan struct{})}
	svc := newTestService(provider, &fakeLeads{exists: true}, meetings, nil)

	if _, err := svc.Book(context.Background(), bookInput(uuid.New(), start)); err != nil {
		t.Fatalf("Book() failed: %v", err)
	}

	select {
	case <-meetings.done:
	case <-time.After(2 * time.Second):
		t.Fatal("inline meeting record never happened")
	}

	if meetings.inserted[0].ProviderEventID != "evt_inline" {
		t.Errorf("recorded provider event id = %q, want evt_inline", meetings.inserted[0].ProviderEventID)
	}
}
