package booking

import (
	"context"
	"time"

	"servicehub/api"
	"servicehub/models"

	"go.uber.org/zap"
)

// DefaultAvailabilityService resolves open slots per (provider, date) with
// no caching: correctness over staleness.
type DefaultAvailabilityService struct {
	API    api.BookingAPI
	Logger *zap.Logger
}

func NewDefaultAvailabilityService(bookingAPI api.BookingAPI, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{API: bookingAPI, Logger: logger}
}

// SlotsFor fetches the open slots for one provider on one calendar date
// (YYYY-MM-DD). An empty slot list is a valid "no openings that day" state,
// not an error.
func (s *DefaultAvailabilityService) SlotsFor(ctx context.Context, providerID, date string) (*models.DayAvailability, error) {
	if providerID == "" {
		return nil, NewValidationError("provider is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewValidationError("date must be YYYY-MM-DD")
	}

	day, err := s.API.GetAvailability(ctx, providerID, date)
	if err != nil {
		s.Logger.Warn("Availability fetch failed",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		return nil, err
	}
	if day.AvailableSlots == nil {
		day.AvailableSlots = []models.AvailabilitySlot{}
	}
	return day, nil
}
