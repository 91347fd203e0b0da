package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"seller_portal_backend/internal/booking/repository"
	"seller_portal_backend/internal/scheduler"
	"seller_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeLeads struct {
	exists    bool
	existsErr error
	marked    []uuid.UUID
	markErr   error
}

func (f *fakeLeads) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeLeads) MarkContacted(ctx context.Context, id uuid.UUID) error {
	f.marked = append(f.marked, id)
	return f.markErr
}

type fakeMeetings struct {
	inserted  []*repository.Meeting
	duplicate bool
	insertErr error
	done      chan struct{}
}

func (f *fakeMeetings) Insert(ctx context.Context, meeting *repository.Meeting) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if f.duplicate {
		return false, nil
	}
	f.inserted = append(f.inserted, meeting)
	if f.done != nil {
		close(f.done)
	}
	return true, nil
}

func testPayload() scheduler.MeetingRecordPayload {
	return scheduler.MeetingRecordPayload{
		MeetingID:       uuid.New(),
		LeadID:          uuid.New(),
		ProviderEventID: "evt_abc123",
		EventTypeID:     "consult-30",
		InviteeName:     "Pat Seller",
		InviteeEmail:    "pat@example.com",
		StartTime:       time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC),
		JoinURL:         "https://meet.example.com/evt_abc123",
	}
}

func TestWriterRecordsMeetingAndMarksLead(t *testing.T) {
	leads := &fakeLeads{exists: true}
	meetings := &fakeMeetings{}
	writer := NewWriter(leads, meetings, logger.New("development"))

	payload := testPayload()
	if err := writer.Record(context.Background(), payload); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if len(meetings.inserted) != 1 {
		t.Fatalf("inserted %d meetings, want 1", len(meetings.inserted))
	}
	meeting := meetings.inserted[0]
	if meeting.ProviderEventID != payload.ProviderEventID {
		t.Errorf("provider event id = %q, want %q", meeting.ProviderEventID, payload.ProviderEventID)
	}
	if meeting.Status != repository.StatusScheduled {
		t.Errorf("status = %q, want scheduled", meeting.Status)
	}
	if len(leads.marked) != 1 || leads.marked[0] != payload.LeadID {
		t.Errorf("marked leads = %v, want [%s]", leads.marked, payload.LeadID)
	}
}

func TestWriterDuplicateIsNoOp(t *testing.T) {
	leads := &fakeLeads{exists: true}
	meetings := &fakeMeetings{duplicate: true}
	writer := NewWriter(leads, meetings, logger.New("development"))

	if err := writer.Record(context.Background(), testPayload()); err != nil {
		t.Fatalf("Record() of duplicate failed: %v", err)
	}
	if len(leads.marked) != 0 {
		t.Errorf("duplicate record marked lead contacted %d times, want 0", len(leads.marked))
	}
}

func TestWriterMissingLeadAborts(t *testing.T) {
	leads := &fakeLeads{exists: false}
	meetings := &fakeMeetings{}
	writer := NewWriter(leads, meetings, logger.New("development"))

	if err := writer.Record(context.Background(), testPayload()); err != nil {
		t.Fatalf("Record() with missing lead should not error, got: %v", err)
	}
	if len(meetings.inserted) != 0 {
		t.Errorf("meeting recorded for missing lead")
	}
}

func TestWriterInsertErrorPropagates(t *testing.T) {
	leads := &fakeLeads{exists: true}
	meetings := &fakeMeetings{insertErr: errors.New("connection reset")}
	writer := NewWriter(leads, meetings, logger.New("development"))

	if err := writer.Record(context.Background(), testPayload()); err == nil {
		t.Fatal("Record() should propagate insert errors for retry")
	}
}

func TestWriterLeadStatusFailureIsBestEffort(t *testing.T) {
	leads := &fakeLeads{exists: true, markErr: errors.New("deadlock")}
	meetings := &fakeMeetings{}
	writer := NewWriter(leads, meetings, logger.New("development"))

	if err := writer.Record(context.Background(), testPayload()); err != nil {
		t.Fatalf("Record() failed on lead status update: %v", err)
	}
	if len(meetings.inserted) != 1 {
		t.Errorf("meeting not recorded despite lead status failure")
	}
}
