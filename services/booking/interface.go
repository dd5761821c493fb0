package booking

import (
	"context"

	"servicehub/models"
)

// AvailabilityService fetches a provider's open slots for one date. Results
// are always fetched fresh: the slot set is invalid the moment the date or
// provider changes.
type AvailabilityService interface {
	SlotsFor(ctx context.Context, providerID, date string) (*models.DayAvailability, error)
}

// BookingService is one booking attempt's transaction coordinator.
type BookingService interface {
	// Submit performs at most one network submission. While one is pending
	// further calls are refused outright; after a success the attempt is
	// terminal.
	Submit(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error)
	// State reports the attempt's phase for the UI (enabled/disabled trigger).
	State() TransactionState
	// Record returns the confirmed booking, or nil before confirmation.
	Record() *models.BookingRecord
}
