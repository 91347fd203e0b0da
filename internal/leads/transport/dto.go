// Package transport defines the wire DTOs for the leads endpoints.
package transport

import (
	"encoding/json"
	"time"
)

// CreateLeadRequest is the public intake payload.
type CreateLeadRequest struct {
	FirstName         string          `json:"firstName" binding:"required,max=100"`
	LastName          string          `json:"lastName" binding:"required,max=100"`
	Email             string          `json:"email" binding:"required,email,max=255"`
	Phone             *string         `json:"phone" binding:"omitempty,max=32"`
	PropertyAddress   *string         `json:"propertyAddress" binding:"omitempty,max=255"`
	Notes             *string         `json:"notes" binding:"omitempty,max=2000"`
	RecommendedOption string          `json:"recommendedOption" binding:"omitempty,max=32"`
	QuizAnswers       json.RawMessage `json:"quizAnswers" binding:"omitempty"`
	Source            string          `json:"source" binding:"omitempty,max=64"`
	LandingURL        *string         `json:"landingUrl" binding:"omitempty,url,max=2048"`
	UTMSource         *string         `json:"utmSource" binding:"omitempty,max=255"`
	UTMMedium         *string         `json:"utmMedium" binding:"omitempty,max=255"`
	UTMCampaign       *string         `json:"utmCampaign" binding:"omitempty,max=255"`
}

// LeadResponse is the client-facing representation of a lead.
type LeadResponse struct {
	ID                string          `json:"id"`
	FirstName         string          `json:"firstName"`
	LastName          string          `json:"lastName"`
	Email             string          `json:"email"`
	Phone             *string         `json:"phone,omitempty"`
	PropertyAddress   *string         `json:"propertyAddress,omitempty"`
	RecommendedOption *string         `json:"recommendedOption,omitempty"`
	QuizAnswers       json.RawMessage `json:"quizAnswers,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	Status            string          `json:"status"`
	Source            string          `json:"source"`
	LandingURL        *string         `json:"landingUrl,omitempty"`
	UTMSource         *string         `json:"utmSource,omitempty"`
	UTMMedium         *string         `json:"utmMedium,omitempty"`
	UTMCampaign       *string         `json:"utmCampaign,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ListLeadsResponse wraps a page of leads.
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
}
