// Package transport defines the wire DTOs for the booking endpoints.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeResponse describes a bookable meeting type.
type EventTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	LocationKind    string `json:"locationKind,omitempty"`
}

// AvailabilityResponse is the merged booking calendar.
type AvailabilityResponse struct {
	EventTypeID string      `json:"eventTypeId"`
	Slots       []time.Time `json:"slots"`
}

// ValidateSlotRequest re-checks a slot before the contact-details step.
type ValidateSlotRequest struct {
	EventTypeID string    `json:"eventTypeId" binding:"omitempty,max=64"`
	Start       time.Time `json:"start" binding:"required"`
}

// ValidateSlotResponse reports whether the slot is still open.
type ValidateSlotResponse struct {
	Valid bool `json:"valid"`
}

// CreateBookingRequest confirms a consultation booking.
type CreateBookingRequest struct {
	EventTypeID     string    `json:"eventTypeId" binding:"omitempty,max=64"`
	LeadID          uuid.UUID `json:"leadId" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	InviteeName     string    `json:"inviteeName" binding:"required,max=200"`
	InviteeEmail    string    `json:"inviteeEmail" binding:"required,email,max=255"`
	InviteePhone    string    `json:"inviteePhone" binding:"omitempty,max=32"`
	InviteeTimezone string    `json:"inviteeTimezone" binding:"omitempty,max=64"`
	Program         string    `json:"program" binding:"omitempty,max=100"`
	Notes           string    `json:"notes" binding:"omitempty,max=2000"`
}

// BookingResponse is a confirmed booking.
type BookingResponse struct {
	MeetingID       string    `json:"meetingId"`
	ProviderEventID string    `json:"providerEventId"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	JoinURL         string    `json:"joinUrl,omitempty"`
	CancelURL       string    `json:"cancelUrl,omitempty"`
	RescheduleURL   string    `json:"rescheduleUrl,omitempty"`
}

// MeetingResponse is the admin-facing representation of a recorded meeting.
type MeetingResponse struct {
	ID              string    `json:"id"`
	LeadID          string    `json:"leadId"`
	ProviderEventID string    `json:"providerEventId"`
	EventTypeID     string    `json:"eventTypeId"`
	Program         *string   `json:"program,omitempty"`
	InviteeName     string    `json:"inviteeName"`
	InviteeEmail    string    `json:"inviteeEmail"`
	InviteePhone    *string   `json:"inviteePhone,omitempty"`
	InviteeTimezone *string   `json:"inviteeTimezone,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	LocationKind    *string   `json:"locationKind,omitempty"`
	LocationDetails *string   `json:"locationDetails,omitempty"`
	JoinURL         *string   `json:"joinUrl,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListMeetingsResponse wraps a page of meetings.
type ListMeetingsResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}
