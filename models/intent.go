package models

import (
	"fmt"
	"strings"
)

// SortKey selects the client-side ordering of a fetched result page.
type SortKey string

const (
	SortRating     SortKey = "rating"
	SortPriceLow   SortKey = "price_low"
	SortPriceHigh  SortKey = "price_high"
	SortDistance   SortKey = "distance"
	SortName       SortKey = "name"
	SortExperience SortKey = "experience"
)

// SearchIntent is the canonical, normalized search request. When Category is
// set it takes precedence over Term for matching; RadiusKm only applies when
// both coordinates are present.
type SearchIntent struct {
	Term     string `json:"term,omitempty"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	RadiusKm  float64  `json:"radiusKm,omitempty"`

	PriceMin  *float64 `json:"priceMin,omitempty"`
	PriceMax  *float64 `json:"priceMax,omitempty"`
	MinRating float64  `json:"minRating,omitempty"`

	AvailableOnly bool `json:"availableOnly,omitempty"`
	VerifiedOnly  bool `json:"verifiedOnly,omitempty"`

	Sort  SortKey `json:"sort,omitempty"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// HasCoordinates reports whether the intent carries a search center.
func (si SearchIntent) HasCoordinates() bool {
	return si.Latitude != nil && si.Longitude != nil
}

// CacheKey renders the full parameter tuple. Two intents with the same key
// are the same request and must share one cache entry and one network flight.
func (si SearchIntent) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:list:")
	b.WriteString(strings.ToLower(si.Term))
	b.WriteString("|c=" + si.Category)
	b.WriteString("|l=" + strings.ToLower(si.Location))
	if si.HasCoordinates() {
		fmt.Fprintf(&b, "|geo=%.4f,%.4f,r=%.1f", *si.Latitude, *si.Longitude, si.RadiusKm)
	}
	if si.PriceMin != nil {
		fmt.Fprintf(&b, "|pmin=%.2f", *si.PriceMin)
	}
	if si.PriceMax != nil {
		fmt.Fprintf(&b, "|pmax=%.2f", *si.PriceMax)
	}
	if si.MinRating > 0 {
		fmt.Fprintf(&b, "|r=%.1f", si.MinRating)
	}
	fmt.Fprintf(&b, "|av=%t|vf=%t|s=%s|p=%d|n=%d",
		si.AvailableOnly, si.VerifiedOnly, si.Sort, si.Page, si.Limit)
	return b.String()
}
