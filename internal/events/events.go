// Package events defines the domain events exchanged between modules.
package events

import (
	"time"

	"seller_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Event names.
const (
	LeadCreatedName        = "lead.created"
	MeetingBookedName      = "meeting.booked"
	MeetingReminderDueName = "meeting.reminder_due"
)

// LeadCreated is published when a new seller lead is persisted.
type LeadCreated struct {
	events.BaseEvent
	LeadID            uuid.UUID `json:"leadId"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	RecommendedOption string    `json:"recommendedOption,omitempty"`
}

// EventName returns the event identifier.
func (e LeadCreated) EventName() string { return LeadCreatedName }

// NewLeadCreated creates a LeadCreated event.
func NewLeadCreated(leadID uuid.UUID, firstName, lastName, email, phone, recommendedOption string) LeadCreated {
	return LeadCreated{
		BaseEvent:         events.NewBaseEvent(),
		LeadID:            leadID,
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		Phone:             phone,
		RecommendedOption: recommendedOption,
	}
}

// MeetingBooked is published after a consultation has been confirmed with the
// scheduling provider and recorded locally.
type MeetingBooked struct {
	events.BaseEvent
	MeetingID       uuid.UUID `json:"meetingId"`
	LeadID          uuid.UUID `json:"leadId"`
	ProviderEventID string    `json:"providerEventId"`
	InviteeName     string    `json:"inviteeName"`
	InviteeEmail    string    `json:"inviteeEmail"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	JoinURL         string    `json:"joinUrl,omitempty"`
}

// EventName returns the event identifier.
func (e MeetingBooked) EventName() string { return MeetingBookedName }

// NewMeetingBooked creates a MeetingBooked event.
func NewMeetingBooked(meetingID, leadID uuid.UUID, providerEventID, inviteeName, inviteeEmail string, start, end time.Time, joinURL string) MeetingBooked {
	return MeetingBooked{
		BaseEvent:       events.NewBaseEvent(),
		MeetingID:       meetingID,
		LeadID:          leadID,
		ProviderEventID: providerEventID,
		InviteeName:     inviteeName,
		InviteeEmail:    inviteeEmail,
		StartTime:       start,
		EndTime:         end,
		JoinURL:         joinURL,
	}
}

// MeetingReminderDue is published by the scheduler worker when a consultation
// starts in roughly 24 hours.
type MeetingReminderDue struct {
	events.BaseEvent
	MeetingID    uuid.UUID `json:"meetingId"`
	InviteeName  string    `json:"inviteeName"`
	InviteeEmail string    `json:"inviteeEmail"`
	StartTime    time.Time `json:"startTime"`
	JoinURL      string    `json:"joinUrl,omitempty"`
}

// EventName returns the event identifier.
func (e MeetingReminderDue) EventName() string { return MeetingReminderDueName }

// NewMeetingReminderDue creates a MeetingReminderDue event.
func NewMeetingReminderDue(meetingID uuid.UUID, inviteeName, inviteeEmail string, start time.Time, joinURL string) MeetingReminderDue {
	return MeetingReminderDue{
		BaseEvent:    events.NewBaseEvent(),
		MeetingID:    meetingID,
		InviteeName:  inviteeName,
		InviteeEmail: inviteeEmail,
		StartTime:    start,
		JoinURL:      joinURL,
	}
}
