package api

import (
	"time"

	"servicehub/models"
)

// The backend's payloads are loosely shaped (optional fields, a couple of
// historical aliases). Everything is mapped into strongly typed models here,
// at the boundary, so nothing downstream ever touches raw JSON.

type rawLocation struct {
	City      string   `json:"city"`
	State     string   `json:"state"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type rawRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type rawProvider struct {
	ID               string       `json:"id"`
	UserID           string       `json:"userId"`
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	Subcategories    []string     `json:"subcategories"`
	Bio              string       `json:"bio"`
	Description      string       `json:"description"` // older payloads use description
	Location         *rawLocation `json:"location"`
	HourlyRate       *float64     `json:"hourlyRate"`
	StartingPrice    *float64     `json:"startingPrice"`
	Rating           *rawRating   `json:"rating"`
	Verification     string       `json:"verification"`
	Available        *bool        `json:"available"`
	EstimatedArrival string       `json:"estimatedArrival"`
	YearsExperience  int          `json:"yearsExperience"`
	Phone            string       `json:"phone"`
}

type rawPagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Limit      int `json:"limit"`
}

type rawSearchResponse struct {
	Providers  []rawProvider `json:"providers"`
	Pagination rawPagination `json:"pagination"`
}

type rawReview struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Author  string  `json:"author"`
}

type rawProfileResponse struct {
	rawProvider
	Reviews     []rawReview `json:"reviews"`
	BrandImages []string    `json:"brandImages"`
}

type rawSlot struct {
	Time        string `json:"time"`
	DisplayTime string `json:"displayTime"`
}

type rawAvailabilityResponse struct {
	Date           string    `json:"date"`
	AvailableSlots []rawSlot `json:"availableSlots"`
	BookedSlots    int       `json:"bookedSlots"`
}

type rawBookingProvider struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	UserID string `json:"userId"`
}

type rawBookingService struct {
	Title string `json:"title"`
}

type rawBookingResponse struct {
	ID              string              `json:"id"`
	ScheduledAt     string              `json:"scheduledAt"`
	TotalAmount     float64             `json:"totalAmount"`
	ProviderProfile *rawBookingProvider `json:"providerProfile"`
	Service         *rawBookingService  `json:"service"`
}

func normalizeProvider(rp rawProvider) models.Provider {
	p := models.Provider{
		ID:               rp.ID,
		UserID:           rp.UserID,
		Name:             rp.Name,
		Category:         rp.Category,
		Subcategories:    rp.Subcategories,
		Bio:              rp.Bio,
		EstimatedArrival: rp.EstimatedArrival,
		YearsExperience:  rp.YearsExperience,
		Phone:            rp.Phone,
		Verification:     models.VerificationStatus(rp.Verification),
	}
	if p.Bio == "" {
		p.Bio = rp.Description
	}
	if rp.Location != nil {
		p.City = rp.Location.City
		p.State = rp.Location.State
		p.Latitude = rp.Location.Latitude
		p.Longitude = rp.Location.Longitude
	}
	if rp.HourlyRate != nil {
		p.HourlyRate = *rp.HourlyRate
	}
	if rp.StartingPrice != nil {
		p.StartingPrice = *rp.StartingPrice
	}
	if rp.Rating != nil && rp.Rating.Count > 0 {
		// Average without a count is meaningless; keep both zeroed together.
		p.RatingAverage = rp.Rating.Average
		p.RatingCount = rp.Rating.Count
	}
	switch p.Verification {
	case models.VerificationPending, models.VerificationVerified:
	default:
		p.Verification = models.VerificationUnverified
	}
	if rp.Available != nil {
		p.Available = *rp.Available
	}
	return p
}

func normalizeSearchResponse(raw rawSearchResponse) *models.SearchPage {
	page := &models.SearchPage{
		Providers: make([]models.Provider, 0, len(raw.Providers)),
		Pagination: models.Pagination{
			Page:       raw.Pagination.Page,
			TotalPages: raw.Pagination.TotalPages,
			TotalItems: raw.Pagination.TotalItems,
			Limit:      raw.Pagination.Limit,
		},
	}
	for _, rp := range raw.Providers {
		page.Providers = append(page.Providers, normalizeProvider(rp))
	}
	return page
}

func normalizeProfile(raw rawProfileResponse) *models.ProviderProfile {
	profile := &models.ProviderProfile{
		Provider:    normalizeProvider(raw.rawProvider),
		BrandImages: raw.BrandImages,
	}
	for _, rr := range raw.Reviews {
		profile.Reviews = append(profile.Reviews, models.Review{
			Rating:  rr.Rating,
			Comment: rr.Comment,
			Author:  rr.Author,
		})
	}
	return profile
}

// normalizeSlot parses the machine timestamp. Full RFC 3339 is preferred;
// bare clock times are anchored to the requested date.
func normalizeSlot(rs rawSlot, date string) (models.AvailabilitySlot, bool) {
	if t, err := time.Parse(time.RFC3339, rs.Time); err == nil {
		return models.AvailabilitySlot{Time: t, DisplayTime: rs.DisplayTime}, true
	}
	if t, err := time.Parse("2006-01-02 15:04", date+" "+rs.Time); err == nil {
		return models.AvailabilitySlot{Time: t, DisplayTime: rs.DisplayTime}, true
	}
	return models.AvailabilitySlot{}, false
}

func normalizeAvailability(raw rawAvailabilityResponse, providerID string) *models.DayAvailability {
	day := &models.DayAvailability{
		ProviderID:     providerID,
		Date:           raw.Date,
		AvailableSlots: make([]models.AvailabilitySlot, 0, len(raw.AvailableSlots)),
		BookedSlots:    raw.BookedSlots,
	}
	for _, rs := range raw.AvailableSlots {
		if slot, ok := normalizeSlot(rs, raw.Date); ok {
			day.AvailableSlots = append(day.AvailableSlots, slot)
		}
	}
	return day
}

func normalizeBooking(raw rawBookingResponse) (*models.BookingRecord, error) {
	scheduledAt, err := time.Parse(time.RFC3339, raw.ScheduledAt)
	if err != nil {
		return nil, &APIError{Code: CodeDecode, Message: "booking response carried an unparseable scheduledAt"}
	}
	rec := &models.BookingRecord{
		ID:          raw.ID,
		ScheduledAt: scheduledAt,
		TotalAmount: raw.TotalAmount,
	}
	if raw.ProviderProfile != nil {
		rec.ProviderName = raw.ProviderProfile.Name
		rec.ProviderPhone = raw.ProviderProfile.Phone
		rec.ProviderUserID = raw.ProviderProfile.UserID
	}
	if raw.Service != nil {
		rec.ServiceTitle = raw.Service.Title
	}
	return rec, nil
}
