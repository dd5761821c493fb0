package search

import (
	"context"
	"errors"
	"testing"

	"servicehub/models"

	"go.uber.org/zap"
)

func testSearchService(stub *stubProviderAPI) *DefaultSearchService {
	return &DefaultSearchService{
		Cache:  NewResultsCache(stub, nil, zap.NewNop()),
		Radius: testRadiusConfig(),
		Logger: zap.NewNop(),
	}
}

func TestSearchAppliesFilterAndSort(t *testing.T) {
	stub := &stubProviderAPI{page: &models.SearchPage{
		Providers: []models.Provider{
			{ID: "low", Category: "plumbing", RatingAverage: 3.0, RatingCount: 5},
			{ID: "high", Category: "plumbing", RatingAverage: 4.9, RatingCount: 30},
			{ID: "other", Category: "cleaning", RatingAverage: 5.0, RatingCount: 9},
		},
	}}
	svc := testSearchService(stub)

	res, err := svc.Search(context.Background(), models.SearchIntent{Category: "plumbing"})
	if err != nil {
		t.Fatal(err)
	}
	if res.SessionID == "" {
		t.Error("every search should open a session")
	}
	if got, want := ids(res.Providers), []string{"high", "low"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
	if res.Empty {
		t.Error("a populated result must not be flagged empty")
	}
	if res.RadiusKm != 0 {
		t.Errorf("a search without coordinates reports no radius, got %f", res.RadiusKm)
	}
	if res.OfferExpansion {
		t.Error("expansion is only offered for geo-anchored searches")
	}
}

func TestSearchEmptyWithoutCoordinatesIsExhausted(t *testing.T) {
	stub := &stubProviderAPI{page: &models.SearchPage{Providers: []models.Provider{}}}
	svc := testSearchService(stub)

	res, err := svc.Search(context.Background(), models.SearchIntent{Term: "unicorn wrangler"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Empty || res.RadiusState != RadiusExhausted {
		t.Errorf("expected an empty exhausted result, got %+v", res)
	}
}

func TestSearchSparseGeoResultOffersExpansion(t *testing.T) {
	lat, lon := 39.7817, -89.6501
	near := models.Provider{
		ID: "only", Category: "plumbing", RatingAverage: 4.5, RatingCount: 3,
		Latitude: floatPtr(lat + 0.01), Longitude: floatPtr(lon),
	}
	stub := &stubProviderAPI{page: &models.SearchPage{Providers: []models.Provider{near}}}
	svc := testSearchService(stub)

	res, err := svc.Search(context.Background(), models.SearchIntent{
		Category: "plumbing",
		Latitude: &lat, Longitude: &lon,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.RadiusState != RadiusSparse || !res.OfferExpansion {
		t.Errorf("one geo result at the initial radius should offer expansion, got %+v", res)
	}
	if res.RadiusKm != 5 {
		t.Errorf("expected the initial 5km radius, got %f", res.RadiusKm)
	}
	if res.Providers[0].DistanceKm == nil {
		t.Error("geo results should carry computed distances")
	}
}

func TestSearchFetchFailurePropagates(t *testing.T) {
	stub := &stubProviderAPI{err: errors.New("backend down")}
	svc := testSearchService(stub)

	_, err := svc.Search(context.Background(), models.SearchIntent{Term: "plumber"})
	var se *SearchError
	if !errors.As(err, &se) || se.Code != "fetchFailed" {
		t.Errorf("expected a fetch error, got %v", err)
	}
}

func TestExpansionWithoutSessionStoreFails(t *testing.T) {
	svc := testSearchService(&stubProviderAPI{})

	_, err := svc.AcceptExpansion(context.Background(), "missing")
	var se *SearchError
	if !errors.As(err, &se) || se.Code != "sessionError" {
		t.Errorf("expected a session error, got %v", err)
	}
	if _, err := svc.DeclineExpansion(context.Background(), ""); err == nil {
		t.Error("an empty session id must be rejected")
	}
}
