package booking

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"servicehub/api"
	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

// fakeBookingAPI records CreateBooking calls and can block them to hold a
// submission in flight.
type fakeBookingAPI struct {
	calls   int64
	err     error
	day     *models.DayAvailability
	dayErr  error
	release chan struct{}
}

func (f *fakeBookingAPI) GetAvailability(ctx context.Context, providerID, date string) (*models.DayAvailability, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	if f.day != nil {
		return f.day, nil
	}
	return &models.DayAvailability{ProviderID: providerID, Date: date}, nil
}

func (f *fakeBookingAPI) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingRecord{
		ID:          "bk-1",
		ScheduledAt: req.ScheduledAt,
		TotalAmount: 120,
	}, nil
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		ProviderID:  "p1",
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func signedInTokens() *utils.TokenStore {
	return utils.NewTokenStore("opaque-session-token")
}

func TestSubmitValidationNeverReachesNetwork(t *testing.T) {
	fake := &fakeBookingAPI{}
	c := NewCoordinator(fake, signedInTokens(), zap.NewNop())

	cases := []models.BookingRequest{
		{ScheduledAt: time.Now()}, // no provider
		{ProviderID: "p1"},        // no slot
	}
	for _, req := range cases {
		if _, err := c.Submit(context.Background(), req); !IsValidation(err) {
			t.Errorf("expected a validation error for %+v, got %v", req, err)
		}
	}
	if atomic.LoadInt64(&fake.calls) != 0 {
		t.Errorf("validation failures must not reach the network, got %d calls", fake.calls)
	}
	if c.State() != StateIdle {
		t.Errorf("failed validation must leave the attempt idle, got %s", c.State())
	}
}

func TestSubmitUnauthenticatedFailsFast(t *testing.T) {
	fake := &fakeBookingAPI{}
	c := NewCoordinator(fake, utils.NewTokenStore(""), zap.NewNop())

	_, err := c.Submit(context.Background(), validRequest())
	if !api.IsAuthError(err) {
		t.Fatalf("expected an auth error, got %v", err)
	}
	if atomic.LoadInt64(&fake.calls) != 0 {
		t.Errorf("an unauthenticated attempt must not reach the network, got %d calls", fake.calls)
	}
}

func TestSubmitRefusesSecondInFlightAttempt(t *testing.T) {
	fake := &fakeBookingAPI{release: make(chan struct{})}
	c := NewCoordinator(fake, signedInTokens(), zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := c.Submit(context.Background(), validRequest()); err != nil {
			t.Errorf("first submission should succeed, got %v", err)
		}
	}()

	// Wait until the first submission is pending, then try again.
	for c.State() != StatePending {
		time.Sleep(time.Millisecond)
	}
	_, err := c.Submit(context.Background(), validRequest())
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeInFlight {
		t.Errorf("expected an in-flight refusal, got %v", err)
	}

	close(fake.release)
	wg.Wait()

	if got := atomic.LoadInt64(&fake.calls); got != 1 {
		t.Errorf("expected exactly one network submission, got %d", got)
	}
}

func TestSubmitConfirmedIsTerminal(t *testing.T) {
	fake := &fakeBookingAPI{}
	c := NewCoordinator(fake, signedInTokens(), zap.NewNop())

	rec, err := c.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID != "bk-1" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if c.State() != StateConfirmed {
		t.Fatalf("expected confirmed state, got %s", c.State())
	}

	_, err = c.Submit(context.Background(), validRequest())
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeTerminal {
		t.Errorf("a confirmed attempt must refuse resubmission, got %v", err)
	}
	if got := atomic.LoadInt64(&fake.calls); got != 1 {
		t.Errorf("expected exactly one network submission, got %d", got)
	}
	if c.Record() == nil || c.Record().ID != "bk-1" {
		t.Error("confirmed record should remain readable")
	}
}

func TestSubmitFailureReenablesWithServerMessage(t *testing.T) {
	fake := &fakeBookingAPI{err: api.NewServerError(http.StatusConflict, "That slot was just taken.")}
	c := NewCoordinator(fake, signedInTokens(), zap.NewNop())

	_, err := c.Submit(context.Background(), validRequest())
	var be *BookingError
	if !errors.As(err, &be) || be.Code != CodeSubmit {
		t.Fatalf("expected a submit failure, got %v", err)
	}
	if be.Message != "That slot was just taken." {
		t.Errorf("the server's message must surface verbatim, got %q", be.Message)
	}
	if c.State() != StateIdle {
		t.Errorf("a failed submission must re-enable the attempt, got %s", c.State())
	}

	// An explicit retry goes through.
	fake.err = nil
	if _, err := c.Submit(context.Background(), validRequest()); err != nil {
		t.Errorf("retry after failure should succeed, got %v", err)
	}
	if got := atomic.LoadInt64(&fake.calls); got != 2 {
		t.Errorf("expected two network submissions (fail then retry), got %d", got)
	}
}

func TestRegistryReusesCoordinatorPerAttempt(t *testing.T) {
	reg := NewRegistry(&fakeBookingAPI{}, signedInTokens(), zap.NewNop())

	a := reg.For("attempt-1")
	b := reg.For("attempt-1")
	other := reg.For("attempt-2")

	if a != b {
		t.Error("the same attempt key must map to the same coordinator")
	}
	if a == other {
		t.Error("different attempt keys must map to different coordinators")
	}
}
