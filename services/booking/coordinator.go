package booking

import (
	"context"
	"sync"

	"servicehub/api"
	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionState is the phase of one booking attempt.
type TransactionState string

const (
	// StateIdle: submission enabled.
	StateIdle TransactionState = "idle"
	// StatePending: one submission in flight; the trigger is disabled.
	StatePending TransactionState = "pending"
	// StateConfirmed: terminal; one booking attempt produces at most one
	// booking and submission is never re-enabled.
	StateConfirmed TransactionState = "confirmed"
)

// Coordinator guards a single booking attempt. Validation failures resolve
// locally; unauthenticated attempts fail fast with an auth error; a pending
// submission refuses (not queues) any second invocation; failures re-enable
// submission with no automatic retry.
type Coordinator struct {
	API    api.BookingAPI
	Tokens *utils.TokenStore
	Logger *zap.Logger

	mu        sync.Mutex
	state     TransactionState
	attemptID string
	record    *models.BookingRecord
}

func NewCoordinator(bookingAPI api.BookingAPI, tokens *utils.TokenStore, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		API:    bookingAPI,
		Tokens: tokens,
		Logger: logger,
		state:  StateIdle,
	}
}

// Submit runs one booking submission end to end.
func (c *Coordinator) Submit(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error) {
	// Validation errors never reach the network layer.
	if req.ProviderID == "" {
		return nil, NewValidationError("no provider selected")
	}
	if req.ScheduledAt.IsZero() {
		return nil, NewValidationError("no slot selected")
	}
	if !c.Tokens.Authenticated() {
		return nil, api.NewAuthError("sign in before booking")
	}

	c.mu.Lock()
	switch c.state {
	case StatePending:
		c.mu.Unlock()
		return nil, newInFlightError()
	case StateConfirmed:
		c.mu.Unlock()
		return nil, newTerminalError()
	}
	c.state = StatePending
	c.attemptID = uuid.New().String()
	attemptID := c.attemptID
	c.mu.Unlock()

	c.Logger.Info("Submitting booking",
		zap.String("attemptID", attemptID),
		zap.String("providerID", req.ProviderID),
		zap.Time("scheduledAt", req.ScheduledAt))

	record, err := c.API.CreateBooking(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// Re-enable submission for an explicit user retry.
		c.state = StateIdle
		c.Logger.Warn("Booking submission failed",
			zap.String("attemptID", attemptID), zap.Error(err))
		return nil, newSubmitError(err)
	}

	c.state = StateConfirmed
	c.record = record
	c.Logger.Info("Booking confirmed",
		zap.String("attemptID", attemptID), zap.String("bookingID", record.ID))
	return record, nil
}

// State reports the attempt's current phase.
func (c *Coordinator) State() TransactionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Record returns the confirmed booking, or nil.
func (c *Coordinator) Record() *models.BookingRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}
