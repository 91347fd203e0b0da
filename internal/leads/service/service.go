// Package service implements lead intake and management.
package service

import (
	"context"
	"strings"

	"seller_portal_backend/internal/catalog"
	domainevents "seller_portal_backend/internal/events"
	"seller_portal_backend/internal/leads/repository"
	"seller_portal_backend/platform/apperr"
	"seller_portal_backend/platform/events"
	"seller_portal_backend/platform/logger"
	"seller_portal_backend/platform/phone"
	"seller_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service implements lead business logic.
type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a leads service.
func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateLeadInput carries a validated intake submission.
type CreateLeadInput struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             *string
	PropertyAddress   *string
	Notes             *string
	RecommendedOption string
	QuizAnswers       []byte
	Source            string
	LandingURL        *string
	UTMSource         *string
	UTMMedium         *string
	UTMCampaign       *string
}

// Create persists a new lead and publishes LeadCreated. Free-text fields are
// sanitized and the phone number is normalized to E.164 before storage.
func (s *Service) Create(ctx context.Context, input CreateLeadInput) (*repository.Lead, error) {
	normalizedPhone, err := normalizePhone(input.Phone)
	if err != nil {
		return nil, err
	}

	var recommended *string
	if input.RecommendedOption != "" {
		option, ok := catalog.ParseOption(input.RecommendedOption)
		if !ok {
			return nil, apperr.Validation("unknown recommended option")
		}
		key := option.Key()
		recommended = &key
	}

	source := input.Source
	if source == "" {
		source = "portal"
	}

	lead := &repository.Lead{
		ID:                uuid.New(),
		FirstName:         sanitize.Text(input.FirstName),
		LastName:          sanitize.Text(input.LastName),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:             normalizedPhone,
		PropertyAddress:   sanitize.TextPtr(input.PropertyAddress),
		RecommendedOption: recommended,
		QuizAnswers:       input.QuizAnswers,
		Notes:             sanitize.TextPtr(input.Notes),
		Status:            repository.StatusNew,
		Source:            sanitize.Text(source),
		LandingURL:        sanitize.TextPtr(input.LandingURL),
		UTMSource:         sanitize.TextPtr(input.UTMSource),
		UTMMedium:         sanitize.TextPtr(input.UTMMedium),
		UTMCampaign:       sanitize.TextPtr(input.UTMCampaign),
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	phoneValue := ""
	if lead.Phone != nil {
		phoneValue = *lead.Phone
	}
	recommendedValue := ""
	if lead.RecommendedOption != nil {
		recommendedValue = *lead.RecommendedOption
	}
	s.bus.Publish(ctx, domainevents.NewLeadCreated(
		lead.ID, lead.FirstName, lead.LastName, lead.Email, phoneValue, recommendedValue,
	))

	return lead, nil
}

// GetByID returns a single lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*repository.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists reports whether the lead exists.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// List returns leads matching the filter.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*repository.Lead, error) {
	return s.repo.List(ctx, filter)
}

// MarkContacted moves the lead to the contacted status. Used after a
// consultation has been booked for the lead.
func (s *Service) MarkContacted(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, repository.StatusContacted)
}

func normalizePhone(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}

	normalized, err := phone.NormalizeE164(trimmed)
	if err != nil {
		return nil, apperr.Validation("invalid phone number")
	}
	return &normalized, nil
}
