// Package repository provides PostgreSQL persistence for seller leads.
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

// Lead statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"
)

// Lead is a seller lead captured from the public portal.
type Lead struct {
	ID                uuid.UUID
	FirstName         string
	LastName          string
	Email             string
	Phone             *string
	PropertyAddress   *string
	RecommendedOption *string
	QuizAnswers       []byte
	Notes             *string
	Status            string
	Source            string
	LandingURL        *string
	UTMSource         *string
	UTMMedium         *string
	UTMCampaign       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Repository provides access to the leads table.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, first_name, last_name, email, phone, property_address,
	recommended_option, quiz_answers, notes, status, source, landing_url,
	utm_source, utm_medium, utm_campaign, created_at, updated_at`

// Create inserts a new lead and returns it with generated fields populated.
func (r *Repository) Create(ctx context.Context, lead *Lead) error {
	query := `
		INSERT INTO leads (
			id, first_name, last_name, email, phone, property_address,
			recommended_option, quiz_answers, notes, status, source,
			landing_url, utm_source, utm_medium, utm_campaign
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.PropertyAddress, lead.RecommendedOption, lead.QuizAnswers,
		lead.Notes, lead.Status, lead.Source, lead.LandingURL,
		lead.UTMSource, lead.UTMMedium, lead.UTMCampaign,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// GetByID fetches a single lead.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("lead not found")
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// Exists reports whether a lead with the given ID exists.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lead existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the lead's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("lead not found")
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// List returns leads ordered newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []interface{}{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]*Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.PropertyAddress, &lead.RecommendedOption, &lead.QuizAnswers,
		&lead.Notes, &lead.Status, &lead.Source, &lead.LandingURL,
		&lead.UTMSource, &lead.UTMMedium, &lead.UTMCampaign,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
