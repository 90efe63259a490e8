package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

// The server below accepts only the current access token and rotates the
// pair on every refresh, like the real API.
type sessionServer struct {
	mu           sync.Mutex
	access       string
	refresh      string
	refreshCalls int32
	denyRefresh  bool
}

func (s *sessionServer) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.refreshCalls, 1)

		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.denyRefresh || req.RefreshToken != s.refresh {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "invalid or expired refresh token"})
			return
		}

		s.access += "x"
		s.refresh += "x"
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  s.access,
			"refresh_token": s.refresh,
		})
	})

	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		current := "Bearer " + s.access
		s.mu.Unlock()

		if r.Header.Get("Authorization") != current {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"msg": "invalid or expired token"})
			return
		}

		json.NewEncoder(w).Encode([]domain.User{{ID: 1, Code: "MLNUX7K2QZ"}})
	})

	return mux
}

func TestClientRefreshesOnUnauthorized(t *testing.T) {
	backend := &sessionServer{access: "a1", refresh: "r1"}
	ts := httptest.NewServer(backend.handler(t))
	defer ts.Close()

	store := &MemoryTokenStore{}
	store.SetTokens("stale", "r1")
	c := New(ts.URL, store)

	users, err := c.SearchUsers(context.Background(), "MLNU")
	require.NoError(t, err)
	require.Len(t, users, 1)

	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
	assert.Equal(t, "a1x", store.AccessToken())
	assert.Equal(t, "r1x", store.RefreshToken())
}

// A burst of concurrent 401s must collapse into one refresh exchange.
// With n independent refreshes the server would rotate the pair n times
// and all but the first would present an already-consumed token.
func TestClientSingleFlightRefresh(t *testing.T) {
	backend := &sessionServer{access: "a1", refresh: "r1"}
	ts := httptest.NewServer(backend.handler(t))
	defer ts.Close()

	store := &MemoryTokenStore{}
	store.SetTokens("stale", "r1")
	c := New(ts.URL, store)

	const concurrency = 8

	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.SearchUsers(context.Background(), "MLNU")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoErrorf(t, err, "request %d", i)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&backend.refreshCalls))
}

func TestClientSessionExpired(t *testing.T) {
	backend := &sessionServer{access: "a1", refresh: "r1", denyRefresh: true}
	ts := httptest.NewServer(backend.handler(t))
	defer ts.Close()

	store := &MemoryTokenStore{}
	store.SetTokens("stale", "r1")
	c := New(ts.URL, store)

	_, err := c.SearchUsers(context.Background(), "MLNU")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestClientSessionExpiredWithoutRefreshToken(t *testing.T) {
	backend := &sessionServer{access: "a1", refresh: "r1"}
	ts := httptest.NewServer(backend.handler(t))
	defer ts.Close()

	c := New(ts.URL, &MemoryTokenStore{})

	_, err := c.SearchUsers(context.Background(), "MLNU")
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.refreshCalls))
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{"code": 409, "msg": "already registered for this event"})
	}))
	defer ts.Close()

	store := &MemoryTokenStore{}
	store.SetTokens("a", "r")
	c := New(ts.URL, store)

	_, err := c.CheckIn(context.Background(), 7, 1, []string{"MLNUX7K2QZ"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "already registered for this event", apiErr.Msg)
}

// Readers on request goroutines overlap writers on the refresh path, so
// the store must hold up under the race detector.
func TestMemoryTokenStoreConcurrentAccess(t *testing.T) {
	store := &MemoryTokenStore{}
	store.SetTokens("a0", "r0")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch i % 4 {
				case 0:
					store.SetTokens("a1", "r1")
				case 1:
					_ = store.AccessToken()
				case 2:
					_ = store.RefreshToken()
				default:
					store.Clear()
				}
			}
		}()
	}
	wg.Wait()

	store.SetTokens("a2", "r2")
	assert.Equal(t, "a2", store.AccessToken())
	assert.Equal(t, "r2", store.RefreshToken())
}
