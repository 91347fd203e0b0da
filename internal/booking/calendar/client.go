// Package calendar talks to the external scheduling provider that hosts the
// brokerage's consultation calendar.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seller_portal_backend/platform/apperr"
	"seller_portal_backend/platform/config"
	"seller_portal_backend/platform/logger"
)

// ErrSlotUnavailable is returned when the provider rejects a booking because
// the requested slot was taken between selection and confirmation.
var ErrSlotUnavailable = errors.New("slot no longer available")

// EventType describes a bookable meeting type.
type EventType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	// LocationKind is "phone", "video" or "in_person" and drives the
	// confirmation copy shown to the invitee.
	LocationKind string `json:"locationKind"`
}

// Slot is a single bookable start time.
type Slot struct {
	Start time.Time `json:"start"`
}

// BookingRequest carries everything needed to confirm a slot.
type BookingRequest struct {
	EventTypeID     string
	Start           time.Time
	InviteeName     string
	InviteeEmail    string
	InviteePhone    string
	InviteeTimezone string
	Notes           string
	TrackingContent string
}

// Booking is a confirmed meeting at the provider.
type Booking struct {
	EventID       string    `json:"uid"`
	InviteeID     string    `json:"inviteeId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	AssignedHost  string    `json:"assignedHost"`
	LocationKind  string    `json:"locationKind"`
	Location      string    `json:"location"`
	JoinURL       string    `json:"joinUrl"`
	CancelURL     string    `json:"cancelUrl"`
	RescheduleURL string    `json:"rescheduleUrl"`
}

// Provider is the scheduling backend the booking flow runs against.
type Provider interface {
	EventType(ctx context.Context, id string) (*EventType, error)
	Availability(ctx context.Context, eventTypeID string, from, to time.Time) ([]Slot, error)
	Book(ctx context.Context, req BookingRequest) (*Booking, error)
}

// Client is the HTTP implementation of Provider.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logger.Logger
}

// NewClient creates a provider client from the scheduling configuration.
func NewClient(cfg config.SchedulingConfig, log *logger.Logger) *Client {
	timeout := cfg.GetSchedulingTimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.GetSchedulingAPIURL(), "/"),
		token:   cfg.GetSchedulingAPIToken(),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// EventType fetches a meeting type by ID.
func (c *Client) EventType(ctx context.Context, id string) (*EventType, error) {
	var eventType EventType
	path := "/event-types/" + url.PathEscape(id)
	if err := c.get(ctx, path, nil, &eventType); err != nil {
		return nil, err
	}
	return &eventType, nil
}

// Availability fetches the open slots for an event type in [from, to).
func (c *Client) Availability(ctx context.Context, eventTypeID string, from, to time.Time) ([]Slot, error) {
	params := url.Values{}
	params.Set("eventTypeId", eventTypeID)
	params.Set("start", from.UTC().Format(time.RFC3339))
	params.Set("end", to.UTC().Format(time.RFC3339))

	var payload struct {
		Slots []Slot `json:"slots"`
	}
	if err := c.get(ctx, "/slots", params, &payload); err != nil {
		return nil, err
	}
	return payload.Slots, nil
}

// Book confirms a slot with the provider.
func (c *Client) Book(ctx context.Context, req BookingRequest) (*Booking, error) {
	body := map[string]interface{}{
		"eventTypeId": req.EventTypeID,
		"start":       req.Start.UTC().Format(time.RFC3339),
		"invitee": map[string]string{
			"name":     req.InviteeName,
			"email":    req.InviteeEmail,
			"phone":    req.InviteePhone,
			"timezone": req.InviteeTimezone,
		},
		"notes": req.Notes,
		"metadata": map[string]string{
			"trackingContent": req.TrackingContent,
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.ProviderError("book", err)
		return nil, fmt.Errorf("scheduling provider unreachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusConflict {
		return nil, ErrSlotUnavailable
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := readErrorMessage(resp.Body)
		if strings.Contains(strings.ToLower(message), "no longer available") {
			return nil, ErrSlotUnavailable
		}
		c.log.Error("scheduling provider rejected booking", "status", resp.StatusCode, "message", message)
		return nil, fmt.Errorf("scheduling provider error: %d", resp.StatusCode)
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking response: %w", err)
	}
	return &booking, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.ProviderError(path, err)
		return fmt.Errorf("scheduling provider unreachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return apperr.NotFound("scheduling resource not found")
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("scheduling provider upstream error", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("scheduling provider error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// Compile-time check that Client implements Provider
var _ Provider = (*Client)(nil)
