package geo

import (
	"context"
	"errors"
	"sync"

	"servicehub/models"
)

// ErrNoCoordinates is returned when no position arrived before the deadline.
var ErrNoCoordinates = errors.New("no coordinates available")

// StaticSource returns a fixed position. Used in demo mode and tests.
type StaticSource struct {
	Position models.Coordinates
}

func (s StaticSource) Coordinates(ctx context.Context) (models.Coordinates, error) {
	return s.Position, nil
}

// PushSource is fed by the gateway when the frontend reports the browser's
// geolocation. Coordinates blocks until the first push or context deadline.
type PushSource struct {
	mu     sync.Mutex
	latest *models.Coordinates
	ready  chan struct{}
}

func NewPushSource() *PushSource {
	return &PushSource{ready: make(chan struct{})}
}

// Push records a reported position and unblocks any waiter.
func (s *PushSource) Push(coords models.Coordinates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	first := s.latest == nil
	s.latest = &coords
	if first {
		close(s.ready)
	}
}

func (s *PushSource) Coordinates(ctx context.Context) (models.Coordinates, error) {
	s.mu.Lock()
	if s.latest != nil {
		coords := *s.latest
		s.mu.Unlock()
		return coords, nil
	}
	ready := s.ready
	s.mu.Unlock()

	select {
	case <-ready:
		s.mu.Lock()
		coords := *s.latest
		s.mu.Unlock()
		return coords, nil
	case <-ctx.Done():
		return models.Coordinates{}, ErrNoCoordinates
	}
}
