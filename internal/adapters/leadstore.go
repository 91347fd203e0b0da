// Package adapters bridges module boundaries so bounded contexts depend on
// small ports instead of each other's services.
package adapters

import (
	"context"

	leadsservice "seller_portal_backend/internal/leads/service"

	"github.com/google/uuid"
)

// LeadStore adapts the leads service to the booking module's LeadStore port.
type LeadStore struct {
	svc *leadsservice.Service
}

// NewLeadStore creates the adapter.
func NewLeadStore(svc *leadsservice.Service) *LeadStore {
	return &LeadStore{svc: svc}
}

// Exists reports whether the lead exists.
func (a *LeadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.svc.Exists(ctx, id)
}

// MarkContacted moves the lead to the contacted status.
func (a *LeadStore) MarkContacted(ctx context.Context, id uuid.UUID) error {
	return a.svc.MarkContacted(ctx, id)
}
