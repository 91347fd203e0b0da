// Package scheduler provides background task definitions, the enqueue client
// and the worker that processes tasks from Redis.
package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names.
const (
	TaskMeetingRecord   = "booking.meeting.record"
	TaskMeetingReminder = "booking.reminder"
)

// MeetingRecordPayload carries a confirmed provider booking that must be
// persisted locally.
type MeetingRecordPayload struct {
	MeetingID         uuid.UUID `json:"meetingId"`
	LeadID            uuid.UUID `json:"leadId"`
	ProviderEventID   string    `json:"providerEventId"`
	ProviderInviteeID string    `json:"providerInviteeId,omitempty"`
	EventTypeID       string    `json:"eventTypeId"`
	Program           string    `json:"program,omitempty"`
	InviteeName       string    `json:"inviteeName"`
	InviteeEmail      string    `json:"inviteeEmail"`
	InviteePhone      string    `json:"inviteePhone,omitempty"`
	InviteeTimezone   string    `json:"inviteeTimezone,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	LocationKind      string    `json:"locationKind,omitempty"`
	LocationDetails   string    `json:"locationDetails,omitempty"`
	JoinURL           string    `json:"joinUrl,omitempty"`
	CancelURL         string    `json:"cancelUrl,omitempty"`
	RescheduleURL     string    `json:"rescheduleUrl,omitempty"`
}

// MeetingReminderPayload triggers the reminder email ahead of a consultation.
type MeetingReminderPayload struct {
	MeetingID    uuid.UUID `json:"meetingId"`
	InviteeName  string    `json:"inviteeName"`
	InviteeEmail string    `json:"inviteeEmail"`
	StartTime    time.Time `json:"startTime"`
	JoinURL      string    `json:"joinUrl,omitempty"`
}

// NewMeetingRecordTask builds the asynq task for a meeting record payload.
func NewMeetingRecordTask(payload MeetingRecordPayload) (*asynq.Task, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meeting record payload: %w", err)
	}
	return asynq.NewTask(TaskMeetingRecord, encoded), nil
}

// NewMeetingReminderTask builds the asynq task for a reminder payload.
func NewMeetingReminderTask(payload MeetingReminderPayload) (*asynq.Task, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode meeting reminder payload: %w", err)
	}
	return asynq.NewTask(TaskMeetingReminder, encoded), nil
}
