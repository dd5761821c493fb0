package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

func testClient(baseURL, token string) *Client {
	return NewClient(baseURL, 5*time.Second, utils.NewTokenStore(token), zap.NewNop())
}

func TestSearchRendersQueryAndBearer(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/providers/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"providers":[{"id":"p1","name":"Alice"}],"pagination":{"page":2,"limit":5,"totalItems":11,"totalPages":3}}`))
	}))
	defer srv.Close()

	lat, lon := 39.7817, -89.6501
	providers := NewRESTProviderAPI(testClient(srv.URL, "session-token"))
	page, err := providers.Search(context.Background(), models.SearchIntent{
		Term:          "plumber",
		Latitude:      &lat,
		Longitude:     &lon,
		RadiusKm:      5,
		MinRating:     4,
		AvailableOnly: true,
		Sort:          models.SortRating,
		Page:          2,
		Limit:         5,
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer session-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	want := map[string]string{
		"search":       "plumber",
		"lat":          "39.781700",
		"lon":          "-89.650100",
		"radius":       "5.0",
		"rating":       "4.0",
		"availability": "true",
		"sortBy":       "rating",
		"page":         "2",
		"limit":        "5",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if len(page.Providers) != 1 || page.Providers[0].ID != "p1" {
		t.Errorf("unexpected page: %+v", page)
	}
	if page.Pagination.TotalItems != 11 || page.Pagination.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", page.Pagination)
	}
}

func TestSearchWithCategoryRoutesToCategoryEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"providers":[]}`))
	}))
	defer srv.Close()

	providers := NewRESTProviderAPI(testClient(srv.URL, ""))
	if _, err := providers.Search(context.Background(), models.SearchIntent{Category: "plumbing"}); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/providers/category/plumbing" {
		t.Errorf("expected the category endpoint, got %s", gotPath)
	}
}

func TestUnauthorizedBecomesAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	providers := NewRESTProviderAPI(testClient(srv.URL, "stale"))
	_, err := providers.Search(context.Background(), models.SearchIntent{Term: "plumber"})
	if !IsAuthError(err) {
		t.Errorf("expected an auth error, got %v", err)
	}
}

func TestServerErrorCarriesBackendMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "That slot was just taken."})
	}))
	defer srv.Close()

	bookings := NewRESTBookingAPI(testClient(srv.URL, "token"))
	_, err := bookings.CreateBooking(context.Background(), models.BookingRequest{
		ProviderID:  "p1",
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	})
	if got := ServerMessage(err); got != "That slot was just taken." {
		t.Errorf("expected the backend message verbatim, got %q (%v)", got, err)
	}
}

func TestTransportFailureBecomesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // the port now refuses connections

	providers := NewRESTProviderAPI(testClient(srv.URL, ""))
	_, err := providers.Search(context.Background(), models.SearchIntent{Term: "plumber"})
	if !IsNetworkError(err) {
		t.Errorf("expected a network error, got %v", err)
	}
	if ServerMessage(err) != "" {
		t.Error("transport failures carry no server message")
	}
}

func TestCreateBookingRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["providerId"] != "p1" {
			t.Errorf("unexpected providerId %v", body["providerId"])
		}
		if body["scheduledAt"] != "2026-09-01T10:00:00Z" {
			t.Errorf("scheduledAt should be RFC3339 UTC, got %v", body["scheduledAt"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"bk-1","scheduledAt":"2026-09-01T10:00:00Z","totalAmount":120,"providerProfile":{"name":"Alice","phone":"+12175550142","userId":"u-9"},"service":{"title":"Drain repair"}}`))
	}))
	defer srv.Close()

	bookings := NewRESTBookingAPI(testClient(srv.URL, "token"))
	rec, err := bookings.CreateBooking(context.Background(), models.BookingRequest{
		ProviderID:  "p1",
		ScheduledAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "bk-1" || rec.ProviderName != "Alice" || rec.TotalAmount != 120 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestGetAvailabilityParsesSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/provider/p1/availability" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("date") != "2026-09-01" {
			t.Errorf("unexpected date %q", r.URL.Query().Get("date"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"date":"2026-09-01","availableSlots":[{"time":"2026-09-01T09:00:00Z","displayTime":"9:00 AM"},{"time":"11:00","displayTime":"11:00 AM"}],"bookedSlots":2}`))
	}))
	defer srv.Close()

	bookings := NewRESTBookingAPI(testClient(srv.URL, "token"))
	day, err := bookings.GetAvailability(context.Background(), "p1", "2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.AvailableSlots) != 2 {
		t.Fatalf("expected 2 open slots, got %d", len(day.AvailableSlots))
	}
	if day.AvailableSlots[0].Time.Hour() != 9 || day.AvailableSlots[0].DisplayTime != "9:00 AM" {
		t.Errorf("unexpected first slot: %+v", day.AvailableSlots[0])
	}
	if day.AvailableSlots[1].Time.Hour() != 11 {
		t.Errorf("bare clock times should anchor to the requested date, got %+v", day.AvailableSlots[1])
	}
	if day.BookedSlots != 2 {
		t.Errorf("expected 2 booked slots, got %d", day.BookedSlots)
	}
}
