package search

import (
	"context"

	"servicehub/models"
)

// Result is one evaluated search step handed to the presentation layer.
type Result struct {
	SessionID      string            `json:"sessionId"`
	Providers      []models.Provider `json:"providers"`
	Pagination     models.Pagination `json:"pagination"`
	RadiusKm       float64           `json:"radiusKm,omitempty"`
	RadiusState    RadiusState       `json:"radiusState"`
	OfferExpansion bool              `json:"offerExpansion"`
	// Empty marks the zero-match state, which is distinct from an error.
	Empty bool `json:"empty"`
}

// SearchService drives the discovery pipeline: normalize, fetch through the
// cache, filter/sort client-side, and evaluate radius expansion.
type SearchService interface {
	Search(ctx context.Context, intent models.SearchIntent) (*Result, error)
	AcceptExpansion(ctx context.Context, sessionID string) (*Result, error)
	DeclineExpansion(ctx context.Context, sessionID string) (*Result, error)
}
