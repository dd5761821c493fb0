package search

import (
	"context"
	"encoding/json"
	"fmt"

	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSearchService implements SearchService. Radius-expansion state is
// kept in a redis-backed session so the offer survives across gateway
// requests.
type DefaultSearchService struct {
	Cache    *ResultsCache
	Sessions *redis.Client
	Radius   RadiusConfig
	Logger   *zap.Logger
}

// searchSession is the persisted state between a sparse result and the
// user's expand/decline decision.
type searchSession struct {
	SessionID string              `json:"sessionId"`
	Intent    models.SearchIntent `json:"intent"`
	RadiusKm  float64             `json:"radiusKm"`
	State     RadiusState         `json:"state"`
}

// Search runs one full discovery step for a normalized-or-raw intent and
// opens a session for any follow-up expansion decision.
func (s *DefaultSearchService) Search(ctx context.Context, intent models.SearchIntent) (*Result, error) {
	intent = NormalizeQuery(intent)
	controller := NewRadiusController(s.Radius, intent.RadiusKm)
	if intent.HasCoordinates() {
		intent.RadiusKm = controller.RadiusKm()
	}

	result, err := s.runStep(ctx, intent, controller)
	if err != nil {
		return nil, err
	}

	result.SessionID = uuid.New().String()
	if err := s.saveSession(ctx, searchSession{
		SessionID: result.SessionID,
		Intent:    intent,
		RadiusKm:  controller.RadiusKm(),
		State:     controller.State(),
	}); err != nil {
		// A lost session only disables the expansion offer; the results
		// themselves are already in hand.
		s.Logger.Warn("Failed to persist search session", zap.Error(err))
	}
	return result, nil
}

// AcceptExpansion widens the session's radius by one step and refetches.
// Past the ceiling it is a no-op returning the current state.
func (s *DefaultSearchService) AcceptExpansion(ctx context.Context, sessionID string) (*Result, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	controller := NewRadiusController(s.Radius, session.RadiusKm).Restore(session.State)

	newRadius, expanded := controller.Accept()
	if !expanded {
		s.Logger.Debug("Expansion request at ceiling ignored", zap.String("sessionID", sessionID))
	}
	intent := session.Intent
	intent.RadiusKm = newRadius

	result, err := s.runStep(ctx, intent, controller)
	if err != nil {
		return nil, err
	}
	result.SessionID = session.SessionID

	session.Intent = intent
	session.RadiusKm = controller.RadiusKm()
	session.State = controller.State()
	if err := s.saveSession(ctx, *session); err != nil {
		s.Logger.Warn("Failed to persist search session", zap.Error(err))
	}
	return result, nil
}

// DeclineExpansion keeps the current result set and returns to Normal.
func (s *DefaultSearchService) DeclineExpansion(ctx context.Context, sessionID string) (*Result, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	controller := NewRadiusController(s.Radius, session.RadiusKm).Restore(session.State)
	controller.Decline()

	page, err := s.Cache.Get(ctx, session.Intent)
	if err != nil {
		return nil, err
	}
	providers := s.postProcess(page.Providers, session.Intent)

	session.State = controller.State()
	if err := s.saveSession(ctx, *session); err != nil {
		s.Logger.Warn("Failed to persist search session", zap.Error(err))
	}
	return &Result{
		SessionID:      session.SessionID,
		Providers:      providers,
		Pagination:     page.Pagination,
		RadiusKm:       controller.RadiusKm(),
		RadiusState:    controller.State(),
		OfferExpansion: false,
		Empty:          len(providers) == 0,
	}, nil
}

// runStep fetches one page, applies the client-side filter/sort, and
// evaluates the radius state machine against the surviving count.
func (s *DefaultSearchService) runStep(ctx context.Context, intent models.SearchIntent, controller *RadiusController) (*Result, error) {
	page, err := s.Cache.Get(ctx, intent)
	if err != nil {
		return nil, err
	}
	providers := s.postProcess(page.Providers, intent)

	// Radius mechanics only apply to geo-anchored searches.
	state := RadiusNormal
	radiusKm := 0.0
	if intent.HasCoordinates() {
		state = controller.Evaluate(len(providers))
		radiusKm = controller.RadiusKm()
	} else if len(providers) == 0 {
		state = RadiusExhausted
	}

	return &Result{
		Providers:      providers,
		Pagination:     page.Pagination,
		RadiusKm:       radiusKm,
		RadiusState:    state,
		OfferExpansion: controller.OffersExpansion(),
		Empty:          len(providers) == 0,
	}, nil
}

func (s *DefaultSearchService) postProcess(providers []models.Provider, intent models.SearchIntent) []models.Provider {
	filtered := Filter(providers, intent)
	filtered = ComputeDistances(filtered, intent)
	return Sort(filtered, intent.Sort)
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("search:session:%s", sessionID)
}

func (s *DefaultSearchService) saveSession(ctx context.Context, session searchSession) error {
	if s.Sessions == nil {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Sessions.Set(ctx, sessionKey(session.SessionID), data, utils.SessionTTL).Err()
}

func (s *DefaultSearchService) loadSession(ctx context.Context, sessionID string) (*searchSession, error) {
	if sessionID == "" {
		return nil, NewSessionError("search session not initialized")
	}
	if s.Sessions == nil {
		return nil, NewSessionError("search sessions unavailable")
	}
	data, err := s.Sessions.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, NewSessionError("search session not found or expired")
	}
	var session searchSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, NewSessionError("failed to parse search session")
	}
	return &session, nil
}
