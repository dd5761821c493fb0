package search

import (
	"sort"
	"strings"

	"servicehub/models"
)

// Sort orders a result page by the given key. The sort is stable (ties keep
// their original relative order) and side-effect-free: the input slice is
// copied, and sorting twice with the same key yields the same order.
func Sort(providers []models.Provider, key models.SortKey) []models.Provider {
	out := make([]models.Provider, len(providers))
	copy(out, providers)

	var less func(a, b models.Provider) bool
	switch key {
	case models.SortRating:
		less = func(a, b models.Provider) bool { return a.RatingAverage > b.RatingAverage }
	case models.SortPriceLow:
		less = func(a, b models.Provider) bool { return a.HourlyRate < b.HourlyRate }
	case models.SortPriceHigh:
		less = func(a, b models.Provider) bool { return a.HourlyRate > b.HourlyRate }
	case models.SortDistance:
		// Providers without a distance compare equal, both to each other and
		// never ahead of a known distance.
		less = func(a, b models.Provider) bool {
			if a.DistanceKm == nil || b.DistanceKm == nil {
				return a.DistanceKm != nil && b.DistanceKm == nil
			}
			return *a.DistanceKm < *b.DistanceKm
		}
	case models.SortName:
		less = func(a, b models.Provider) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case models.SortExperience:
		less = func(a, b models.Provider) bool { return a.YearsExperience > b.YearsExperience }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
