package models

import "time"

// AvailabilitySlot is a bookable time window for a provider on one date.
type AvailabilitySlot struct {
	Time        time.Time `json:"time"`
	DisplayTime string    `json:"displayTime"`
}

// DayAvailability is the full availability picture for one (provider, date)
// pair. It is produced fresh per query and must never be reused across dates
// or providers; an empty AvailableSlots list is a valid "no openings" state,
// not an error.
type DayAvailability struct {
	ProviderID     string             `json:"providerId"`
	Date           string             `json:"date"` // YYYY-MM-DD
	AvailableSlots []AvailabilitySlot `json:"availableSlots"`
	BookedSlots    int                `json:"bookedSlots"`
}
