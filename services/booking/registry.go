package booking

import (
	"sync"

	"servicehub/api"
	"servicehub/utils"

	"go.uber.org/zap"
)

// Registry hands out one Coordinator per booking attempt so the in-flight
// and terminal guarantees hold across gateway requests from the same UI
// instance.
type Registry struct {
	API    api.BookingAPI
	Tokens *utils.TokenStore
	Logger *zap.Logger

	mu     sync.Mutex
	coords map[string]*Coordinator
}

func NewRegistry(bookingAPI api.BookingAPI, tokens *utils.TokenStore, logger *zap.Logger) *Registry {
	return &Registry{
		API:    bookingAPI,
		Tokens: tokens,
		Logger: logger,
		coords: make(map[string]*Coordinator),
	}
}

// For returns the coordinator for an attempt key, creating it on first use.
func (r *Registry) For(attemptKey string) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.coords[attemptKey]; ok {
		return c
	}
	c := NewCoordinator(r.API, r.Tokens, r.Logger)
	r.coords[attemptKey] = c
	return c
}
