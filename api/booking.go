package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"servicehub/models"
)

// BookingAPI is the availability/booking path of the backend.
type BookingAPI interface {
	GetAvailability(ctx context.Context, providerID, date string) (*models.DayAvailability, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error)
}

// RESTBookingAPI talks to the marketplace backend's booking endpoints.
type RESTBookingAPI struct {
	Client *Client
}

func NewRESTBookingAPI(client *Client) *RESTBookingAPI {
	return &RESTBookingAPI{Client: client}
}

// GetAvailability fetches the open slots for one provider and date
// (YYYY-MM-DD, day granularity).
func (a *RESTBookingAPI) GetAvailability(ctx context.Context, providerID, date string) (*models.DayAvailability, error) {
	if providerID == "" {
		return nil, NewServerError(http.StatusBadRequest, "provider id is required")
	}
	q := url.Values{}
	q.Set("date", date)

	var raw rawAvailabilityResponse
	path := fmt.Sprintf("/bookings/provider/%s/availability", url.PathEscape(providerID))
	if err := a.Client.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeAvailability(raw, providerID), nil
}

type createBookingBody struct {
	ProviderID    string `json:"providerId"`
	ScheduledAt   string `json:"scheduledAt"`
	LocationCity  string `json:"locationCity,omitempty"`
	LocationState string `json:"locationState,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CreateBooking submits one booking request and returns the confirmed
// record. Callers own in-flight discipline; this method performs exactly one
// network submission per call.
func (a *RESTBookingAPI) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error) {
	body := createBookingBody{
		ProviderID:    req.ProviderID,
		ScheduledAt:   req.ScheduledAt.UTC().Format(time.RFC3339),
		LocationCity:  req.LocationCity,
		LocationState: req.LocationState,
		Notes:         req.Notes,
	}
	var raw rawBookingResponse
	if err := a.Client.do(ctx, http.MethodPost, "/bookings", nil, body, &raw); err != nil {
		return nil, err
	}
	return normalizeBooking(raw)
}
