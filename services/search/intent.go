package search

import (
	"strings"

	"servicehub/models"
)

// NormalizeQuery turns raw user input into a canonical SearchIntent. Pure;
// no side effects. Category, when set, takes precedence over free text for
// matching; radius is cleared when no coordinates back it.
func NormalizeQuery(in models.SearchIntent) models.SearchIntent {
	out := in
	out.Term = strings.TrimSpace(in.Term)
	out.Category = strings.ToLower(strings.TrimSpace(in.Category))
	out.Location = strings.TrimSpace(in.Location)

	if !out.HasCoordinates() {
		out.RadiusKm = 0
	}
	if out.MinRating < 0 {
		out.MinRating = 0
	}
	if out.MinRating > 5 {
		out.MinRating = 5
	}
	if out.PriceMin != nil && out.PriceMax != nil && *out.PriceMin > *out.PriceMax {
		out.PriceMin, out.PriceMax = out.PriceMax, out.PriceMin
	}
	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 1 {
		out.Limit = 10
	}
	if out.Sort == "" {
		out.Sort = models.SortRating
	}
	return out
}

// MatchesQuery applies the text/category match target. A selected category
// is an equality test and free text is ignored; otherwise the term is a
// case-insensitive substring test against category, subcategories and bio,
// combined with OR. Empty text and no category matches everything.
func MatchesQuery(p models.Provider, intent models.SearchIntent) bool {
	if intent.Category != "" {
		return strings.EqualFold(p.Category, intent.Category)
	}
	if intent.Term == "" {
		return true
	}
	if textMatch(p.Category, intent.Term) {
		return true
	}
	for _, sub := range p.Subcategories {
		if textMatch(sub, intent.Term) {
			return true
		}
	}
	return textMatch(p.Bio, intent.Term)
}

// stem strips common English suffixes so trade terms line up with their
// category names ("plumber" vs "plumbing"). Words shorter than four
// characters after stripping are left alone.
func stem(w string) string {
	for _, suffix := range []string{"ing", "ers", "er", "s"} {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 4 {
			return strings.TrimSuffix(w, suffix)
		}
	}
	return w
}

// textMatch is the case-insensitive substring test, with a stemmed retry so
// morphological variants of the same trade still hit.
func textMatch(field, term string) bool {
	field = strings.ToLower(field)
	term = strings.ToLower(term)
	if strings.Contains(field, term) {
		return true
	}
	if st := stem(term); st != term {
		return strings.Contains(field, st)
	}
	return false
}

// MatchesLocation is a case-insensitive substring test against city and
// state. An empty location matches everything.
func MatchesLocation(p models.Provider, location string) bool {
	if location == "" {
		return true
	}
	loc := strings.ToLower(location)
	return strings.Contains(strings.ToLower(p.City), loc) ||
		strings.Contains(strings.ToLower(p.State), loc)
}
