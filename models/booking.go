package models

import "time"

// BookingRequest is the payload for a single booking submission. Exactly one
// request may be in flight per booking attempt.
type BookingRequest struct {
	ProviderID    string    `json:"providerId"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	LocationCity  string    `json:"locationCity,omitempty"`
	LocationState string    `json:"locationState,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// BookingRecord is the server-confirmed result of a successful booking.
// Created once, immutable from the client's perspective. The provider
// contact fields are a denormalized snapshot taken by the backend at
// confirmation time.
type BookingRecord struct {
	ID             string    `json:"id"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	TotalAmount    float64   `json:"totalAmount"`
	ProviderName   string    `json:"providerName,omitempty"`
	ProviderPhone  string    `json:"providerPhone,omitempty"`
	ProviderUserID string    `json:"providerUserId,omitempty"`
	ServiceTitle   string    `json:"serviceTitle,omitempty"`
}
