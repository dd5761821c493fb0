package models

// VerificationStatus is the provider verification state as reported by the backend.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

// Provider is a service professional listed in the marketplace.
// All fields are server-owned; the client never mutates them. Rating average
// is only meaningful when RatingCount > 0.
type Provider struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId,omitempty"` // owning user account, needed for in-app messaging
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories,omitempty"`
	Bio           string   `json:"bio,omitempty"`

	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	HourlyRate    float64 `json:"hourlyRate"`
	StartingPrice float64 `json:"startingPrice,omitempty"`

	RatingAverage float64 `json:"ratingAverage"`
	RatingCount   int     `json:"ratingCount"`

	Verification     VerificationStatus `json:"verification"`
	Available        bool               `json:"available"`
	EstimatedArrival string             `json:"estimatedArrival,omitempty"`
	YearsExperience  int                `json:"yearsExperience,omitempty"`
	Phone            string             `json:"phone,omitempty"`

	// DistanceKm is computed client-side from the search center when
	// coordinates are known; nil when either side lacks coordinates.
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// HasCoordinates reports whether the provider carries a usable lat/lon pair.
func (p Provider) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Rated reports whether the rating average carries any signal.
func (p Provider) Rated() bool {
	return p.RatingCount > 0
}

// ProviderProfile is the extended profile returned by the profile endpoint.
type ProviderProfile struct {
	Provider    Provider       `json:"provider"`
	Reviews     []Review       `json:"reviews,omitempty"`
	BrandImages []string       `json:"brandImages,omitempty"`
	Stats       map[string]int `json:"stats,omitempty"`
}

// Review is a customer review attached to a provider profile.
type Review struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment,omitempty"`
	Author  string  `json:"author,omitempty"`
}
