package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"servicehub/models"
)

// ProviderAPI is the read path for provider data.
type ProviderAPI interface {
	Search(ctx context.Context, intent models.SearchIntent) (*models.SearchPage, error)
	GetProfile(ctx context.Context, id string) (*models.ProviderProfile, error)
}

// RESTProviderAPI talks to the marketplace backend's provider endpoints.
type RESTProviderAPI struct {
	Client *Client
}

func NewRESTProviderAPI(client *Client) *RESTProviderAPI {
	return &RESTProviderAPI{Client: client}
}

// searchQuery renders the intent as the backend's filter query string.
func searchQuery(intent models.SearchIntent) url.Values {
	q := url.Values{}
	if intent.Term != "" {
		q.Set("search", intent.Term)
	}
	if intent.Location != "" {
		q.Set("location", intent.Location)
	}
	if intent.HasCoordinates() {
		q.Set("lat", strconv.FormatFloat(*intent.Latitude, 'f', 6, 64))
		q.Set("lon", strconv.FormatFloat(*intent.Longitude, 'f', 6, 64))
		if intent.RadiusKm > 0 {
			q.Set("radius", strconv.FormatFloat(intent.RadiusKm, 'f', 1, 64))
		}
	}
	if intent.PriceMin != nil {
		q.Set("priceMin", strconv.FormatFloat(*intent.PriceMin, 'f', 2, 64))
	}
	if intent.PriceMax != nil {
		q.Set("priceMax", strconv.FormatFloat(*intent.PriceMax, 'f', 2, 64))
	}
	if intent.MinRating > 0 {
		q.Set("rating", strconv.FormatFloat(intent.MinRating, 'f', 1, 64))
	}
	if intent.AvailableOnly {
		q.Set("availability", "true")
	}
	if intent.VerifiedOnly {
		q.Set("verified", "true")
	}
	if intent.Sort != "" {
		q.Set("sortBy", string(intent.Sort))
	}
	page := intent.Page
	if page < 1 {
		page = 1
	}
	limit := intent.Limit
	if limit < 1 {
		limit = 10
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// Search fetches one page of providers. A selected category routes to the
// category endpoint; otherwise the free-text search endpoint is used.
func (a *RESTProviderAPI) Search(ctx context.Context, intent models.SearchIntent) (*models.SearchPage, error) {
	path := "/providers/search"
	if intent.Category != "" {
		path = "/providers/category/" + url.PathEscape(intent.Category)
	}
	q := searchQuery(intent)

	var raw rawSearchResponse
	if err := a.Client.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeSearchResponse(raw), nil
}

// GetProfile fetches a single provider with extended profile fields.
func (a *RESTProviderAPI) GetProfile(ctx context.Context, id string) (*models.ProviderProfile, error) {
	if id == "" {
		return nil, NewServerError(http.StatusBadRequest, "provider id is required")
	}
	var raw rawProfileResponse
	path := fmt.Sprintf("/providers/profile/%s", url.PathEscape(id))
	if err := a.Client.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeProfile(raw), nil
}
