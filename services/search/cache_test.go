package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"servicehub/models"

	"go.uber.org/zap"
)

// stubProviderAPI counts Search calls and can block them until released, to
// observe in-flight request coalescing.
type stubProviderAPI struct {
	calls   int64
	err     error
	page    *models.SearchPage
	started chan struct{}
	release chan struct{}
}

func (s *stubProviderAPI) Search(ctx context.Context, intent models.SearchIntent) (*models.SearchPage, error) {
	if atomic.AddInt64(&s.calls, 1) == 1 && s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.page != nil {
		return s.page, nil
	}
	return &models.SearchPage{
		Providers:  []models.Provider{{ID: "p1", Name: "Alice"}},
		Pagination: models.Pagination{Page: intent.Page, Limit: intent.Limit, TotalItems: 1, TotalPages: 1},
	}, nil
}

func (s *stubProviderAPI) GetProfile(ctx context.Context, id string) (*models.ProviderProfile, error) {
	return nil, errors.New("not implemented")
}

func TestResultsCacheCoalescesConcurrentFetches(t *testing.T) {
	stub := &stubProviderAPI{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewResultsCache(stub, nil, zap.NewNop())
	intent := models.SearchIntent{Term: "plumber", Page: 1, Limit: 10}

	const callers = 5
	var wg sync.WaitGroup
	pages := make([]*models.SearchPage, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i], errs[i] = cache.Get(context.Background(), intent)
		}(i)
	}

	// Hold the first fetch open long enough for the rest to pile onto it.
	<-stub.started
	time.Sleep(20 * time.Millisecond)
	close(stub.release)
	wg.Wait()

	if got := atomic.LoadInt64(&stub.calls); got >= callers {
		t.Errorf("expected coalesced fetches, got %d calls for %d callers", got, callers)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if pages[i] == nil || len(pages[i].Providers) != 1 {
			t.Errorf("caller %d got an unexpected page: %+v", i, pages[i])
		}
	}
}

func TestResultsCacheFetchErrorIsTyped(t *testing.T) {
	stub := &stubProviderAPI{err: errors.New("backend down")}
	cache := NewResultsCache(stub, nil, zap.NewNop())

	_, err := cache.Get(context.Background(), models.SearchIntent{Term: "plumber"})
	if err == nil {
		t.Fatal("expected an error")
	}
	var se *SearchError
	if !errors.As(err, &se) || se.Code != "fetchFailed" {
		t.Errorf("expected a fetchFailed SearchError, got %v", err)
	}
	if !errors.Is(err, stub.err) {
		t.Error("fetch error should wrap the underlying cause")
	}
	if atomic.LoadInt64(&stub.calls) != 1 {
		t.Errorf("a failed fetch must not be retried, got %d calls", stub.calls)
	}
}

func TestResultsCacheNotifiesSubscribers(t *testing.T) {
	stub := &stubProviderAPI{}
	cache := NewResultsCache(stub, nil, zap.NewNop())

	var mu sync.Mutex
	var gotKey string
	var gotPage *models.SearchPage
	cache.Subscribe(func(key string, page *models.SearchPage) {
		mu.Lock()
		defer mu.Unlock()
		gotKey = key
		gotPage = page
	})

	intent := models.SearchIntent{Term: "plumber", Page: 1, Limit: 10}
	if _, err := cache.Get(context.Background(), intent); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotKey != intent.CacheKey() {
		t.Errorf("subscriber saw key %q, want %q", gotKey, intent.CacheKey())
	}
	if gotPage == nil || len(gotPage.Providers) != 1 {
		t.Errorf("subscriber saw an unexpected page: %+v", gotPage)
	}
}

func TestResultsCacheWorksWithoutRedis(t *testing.T) {
	stub := &stubProviderAPI{}
	cache := NewResultsCache(stub, nil, zap.NewNop())

	page, err := cache.Get(context.Background(), models.SearchIntent{Term: "plumber"})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Providers) != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
	if err := cache.InvalidateLists(context.Background()); err != nil {
		t.Errorf("invalidation without a backend should be a no-op, got %v", err)
	}
}
