package api

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"servicehub/models"

	"github.com/google/uuid"
)

// Demo-mode data source. It implements the same API interfaces with
// synthetic providers so the whole flow can run without a backend. It is
// wired only when DEMO_MODE is set; production error handling never falls
// back to it.

var demoCategories = []string{"plumbing", "electrical", "cleaning"}

var demoSubcategories = map[string][]string{
	"plumbing":   {"pipe repair", "drain cleaning", "water heater"},
	"electrical": {"wiring", "lighting", "panel upgrade"},
	"cleaning":   {"deep cleaning", "move-out", "office"},
}

// DemoProviderAPI serves a fixed fleet of providers scattered around a
// configurable center, furthest at ~5 km and nearest at ~0.1 km.
type DemoProviderAPI struct {
	CenterLat float64
	CenterLon float64

	once      sync.Once
	providers []models.Provider
}

func NewDemoProviderAPI(centerLat, centerLon float64) *DemoProviderAPI {
	return &DemoProviderAPI{CenterLat: centerLat, CenterLon: centerLon}
}

func (d *DemoProviderAPI) fleet() []models.Provider {
	d.once.Do(func() {
		perCategory := 8
		total := len(demoCategories) * perCategory
		maxDistance, minDistance := 5.0, 0.1
		spacing := (maxDistance - minDistance) / float64(total-1)

		counter := 0
		for _, category := range demoCategories {
			subs := demoSubcategories[category]
			for i := 0; i < perCategory; i++ {
				distanceKm := maxDistance - spacing*float64(counter)
				angle := float64(counter) * (2 * math.Pi / float64(total))
				lat := d.CenterLat + distanceKm*0.009*math.Sin(angle)
				lon := d.CenterLon + distanceKm*0.00922*math.Cos(angle)

				ratingCount := (counter * 7) % 40
				p := models.Provider{
					ID:               fmt.Sprintf("demo-%s-%d", category, i+1),
					UserID:           fmt.Sprintf("demo-user-%d", counter+1),
					Name:             fmt.Sprintf("%s Pro %d", strings.Title(category), i+1),
					Category:         category,
					Subcategories:    []string{subs[i%len(subs)]},
					Bio:              fmt.Sprintf("Experienced %s specialist offering %s.", category, subs[i%len(subs)]),
					City:             "Springfield",
					State:            "IL",
					Latitude:         &lat,
					Longitude:        &lon,
					HourlyRate:       25 + float64((counter*13)%60),
					StartingPrice:    40 + float64((counter*9)%80),
					Verification:     models.VerificationUnverified,
					Available:        counter%3 != 0,
					EstimatedArrival: fmt.Sprintf("%d-%d min", 15+counter%20, 30+counter%20),
					YearsExperience:  1 + counter%15,
					Phone:            fmt.Sprintf("+1555%07d", 1000000+counter),
				}
				if ratingCount > 0 {
					p.RatingCount = ratingCount
					p.RatingAverage = 3.0 + float64(counter%21)/10.0
				}
				if counter%2 == 0 {
					p.Verification = models.VerificationVerified
				} else if counter%5 == 0 {
					p.Verification = models.VerificationPending
				}
				d.providers = append(d.providers, p)
				counter++
			}
		}
	})
	return d.providers
}

func demoDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*(math.Pi/180))*math.Cos(lat2*(math.Pi/180))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Search mimics the backend's filtering and paging over the demo fleet.
func (d *DemoProviderAPI) Search(ctx context.Context, intent models.SearchIntent) (*models.SearchPage, error) {
	var matched []models.Provider
	for _, p := range d.fleet() {
		if intent.Category != "" && !strings.EqualFold(p.Category, intent.Category) {
			continue
		}
		if intent.Category == "" && intent.Term != "" {
			term := strings.ToLower(intent.Term)
			hay := strings.ToLower(p.Category + " " + strings.Join(p.Subcategories, " ") + " " + p.Bio)
			if !strings.Contains(hay, term) {
				continue
			}
		}
		if intent.HasCoordinates() && intent.RadiusKm > 0 && p.HasCoordinates() {
			if demoDistanceKm(*intent.Latitude, *intent.Longitude, *p.Latitude, *p.Longitude) > intent.RadiusKm {
				continue
			}
		}
		matched = append(matched, p)
	}

	limit := intent.Limit
	if limit < 1 {
		limit = 10
	}
	page := intent.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(matched) + limit - 1) / limit
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return &models.SearchPage{
		Providers: append([]models.Provider(nil), matched[start:end]...),
		Pagination: models.Pagination{
			Page:       page,
			TotalPages: totalPages,
			TotalItems: len(matched),
			Limit:      limit,
		},
	}, nil
}

func (d *DemoProviderAPI) GetProfile(ctx context.Context, id string) (*models.ProviderProfile, error) {
	for _, p := range d.fleet() {
		if p.ID == id {
			return &models.ProviderProfile{
				Provider: p,
				Reviews: []models.Review{
					{Rating: 5, Comment: "Showed up on time, great work.", Author: "Demo Customer"},
				},
			}, nil
		}
	}
	return nil, NewServerError(404, "provider not found")
}

// DemoBookingAPI serves synthetic availability and accepts every booking.
type DemoBookingAPI struct {
	Providers *DemoProviderAPI
}

func NewDemoBookingAPI(providers *DemoProviderAPI) *DemoBookingAPI {
	return &DemoBookingAPI{Providers: providers}
}

func (d *DemoBookingAPI) GetAvailability(ctx context.Context, providerID, date string) (*models.DayAvailability, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, NewServerError(400, "invalid date")
	}
	slots := make([]models.AvailabilitySlot, 0, 6)
	for hour := 9; hour <= 16; hour += 2 {
		t := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		slots = append(slots, models.AvailabilitySlot{
			Time:        t,
			DisplayTime: t.Format("3:04 PM"),
		})
	}
	return &models.DayAvailability{
		ProviderID:     providerID,
		Date:           date,
		AvailableSlots: slots,
		BookedSlots:    2,
	}, nil
}

func (d *DemoBookingAPI) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error) {
	profile, err := d.Providers.GetProfile(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	p := profile.Provider
	return &models.BookingRecord{
		ID:             uuid.New().String(),
		ScheduledAt:    req.ScheduledAt,
		TotalAmount:    p.StartingPrice + p.HourlyRate,
		ProviderName:   p.Name,
		ProviderPhone:  p.Phone,
		ProviderUserID: p.UserID,
		ServiceTitle:   p.Category,
	}, nil
}
