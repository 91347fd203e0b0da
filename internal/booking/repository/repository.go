// Package repository provides PostgreSQL persistence for booked meetings.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seller_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Meeting statuses.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Meeting is a consultation booked with the scheduling provider and recorded
// locally. ProviderEventID is unique: recording the same provider booking
// twice is a no-op.
type Meeting struct {
	ID                uuid.UUID
	LeadID            uuid.UUID
	ProviderEventID   string
	ProviderInviteeID *string
	EventTypeID       string
	Program           *string
	InviteeName       string
	InviteeEmail      string
	InviteePhone      *string
	InviteeTimezone   *string
	Notes             *string
	StartTime         time.Time
	EndTime           time.Time
	LocationKind      *string
	LocationDetails   *string
	JoinURL           *string
	CancelURL         *string
	RescheduleURL     *string
	Status            string
	CreatedAt         time.Time
}

// Repository provides access to the meetings table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a meetings repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const meetingColumns = `id, lead_id, provider_event_id, provider_invitee_id, event_type_id,
	program, invitee_name, invitee_email, invitee_phone, invitee_timezone, notes,
	start_time, end_time, location_kind, location_details, join_url,
	cancel_url, reschedule_url, status, created_at`

// Insert stores a meeting. It returns false without error when a meeting with
// the same provider event ID already exists; the uniqueness constraint is the
// idempotency mechanism, not an application-level check.
func (r *Repository) Insert(ctx context.Context, meeting *Meeting) (bool, error) {
	query := `
		INSERT INTO meetings (
			id, lead_id, provider_event_id, provider_invitee_id, event_type_id,
			program, invitee_name, invitee_email, invitee_phone, invitee_timezone,
			notes, start_time, end_time, location_kind, location_details,
			join_url, cancel_url, reschedule_url, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (provider_event_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		meeting.ID, meeting.LeadID, meeting.ProviderEventID, meeting.ProviderInviteeID,
		meeting.EventTypeID, meeting.Program, meeting.InviteeName, meeting.InviteeEmail,
		meeting.InviteePhone, meeting.InviteeTimezone, meeting.Notes, meeting.StartTime,
		meeting.EndTime, meeting.LocationKind, meeting.LocationDetails, meeting.JoinURL,
		meeting.CancelURL, meeting.RescheduleURL, meeting.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert meeting: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID fetches a single meeting.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("meeting not found")
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	LeadID *uuid.UUID
	Limit  int
	Offset int
}

// List returns meetings ordered by start time, soonest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Meeting, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings`
	args := []interface{}{}
	if filter.LeadID != nil {
		query += ` WHERE lead_id = $1`
		args = append(args, *filter.LeadID)
	}
	query += fmt.Sprintf(` ORDER BY start_time ASC LIMIT %d OFFSET %d`, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]*Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meetings: %w", err)
	}
	return meetings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeeting(row rowScanner) (*Meeting, error) {
	var meeting Meeting
	err := row.Scan(
		&meeting.ID, &meeting.LeadID, &meeting.ProviderEventID, &meeting.ProviderInviteeID,
		&meeting.EventTypeID, &meeting.Program, &meeting.InviteeName, &meeting.InviteeEmail,
		&meeting.InviteePhone, &meeting.InviteeTimezone, &meeting.Notes, &meeting.StartTime,
		&meeting.EndTime, &meeting.LocationKind, &meeting.LocationDetails, &meeting.JoinURL,
		&meeting.CancelURL, &meeting.RescheduleURL, &meeting.Status, &meeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}
