package search

import (
	"math"

	"servicehub/models"
)

// Filter applies the secondary predicates to an already-fetched page. All
// predicates are ANDed. The output is always a subset of the input in the
// original relative order; the input slice is never mutated.
func Filter(providers []models.Provider, intent models.SearchIntent) []models.Provider {
	out := make([]models.Provider, 0, len(providers))
	for _, p := range providers {
		if !MatchesQuery(p, intent) {
			continue
		}
		if !MatchesLocation(p, intent.Location) {
			continue
		}
		if intent.PriceMin != nil && p.HourlyRate < *intent.PriceMin {
			continue
		}
		if intent.PriceMax != nil && p.HourlyRate > *intent.PriceMax {
			continue
		}
		if intent.MinRating > 0 && p.RatingAverage < intent.MinRating {
			continue
		}
		if intent.AvailableOnly && !p.Available {
			continue
		}
		if intent.VerifiedOnly && p.Verification != models.VerificationVerified {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ComputeDistances fills in DistanceKm from the search center for providers
// that carry coordinates. Providers without coordinates keep a nil distance
// and sort as equals under the distance key.
func ComputeDistances(providers []models.Provider, intent models.SearchIntent) []models.Provider {
	if !intent.HasCoordinates() {
		return providers
	}
	out := make([]models.Provider, len(providers))
	copy(out, providers)
	for i := range out {
		if !out[i].HasCoordinates() {
			continue
		}
		d := haversineKm(*intent.Latitude, *intent.Longitude, *out[i].Latitude, *out[i].Longitude)
		out[i].DistanceKm = &d
	}
	return out
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
