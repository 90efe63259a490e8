// Package client is the typed API consumer used by the operator tools.
// It owns the session: it attaches the access token to every request,
// refreshes it behind a single-flight guard when the server answers 401,
// and retries the original request once with the new token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Melinia-CIT/melinia-api/internal/domain"
	"github.com/Melinia-CIT/melinia-api/internal/pkg/flight"
)

// ErrSessionExpired means the refresh token was rejected too. The caller
// must send the operator back through login.
var ErrSessionExpired = errors.New("session expired, login required")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Msg        string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %v (status %v)", e.Msg, e.StatusCode)
}

// TokenStore holds the session token pair. Implementations decide where
// tokens live (memory, keychain, config file) and must be safe for
// concurrent use: the client reads tokens from request goroutines while
// the refresh path writes them.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	Clear()
}

// MemoryTokenStore keeps the pair in process memory. Good enough for the
// CLI; a GUI client would persist them.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	group   *flight.Group
}

func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		group:   flight.NewGroup(),
	}
}

type loginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// Login authenticates and stores the token pair.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var resp loginResponse
	err := c.doOnce(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, false)
	if err != nil {
		return domain.User{}, err
	}

	c.store.SetTokens(resp.AccessToken, resp.RefreshToken)

	return resp.User, nil
}

// Lookup resolves a scanned or typed code against a round.
func (c *Client) Lookup(ctx context.Context, eventID uint, roundNo int, rawCode string) (domain.LookupResult, error) {
	path := fmt.Sprintf("/events/%d/rounds/%d/lookup?code=%s", eventID, roundNo, url.QueryEscape(rawCode))

	var result domain.LookupResult
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return domain.LookupResult{}, err
	}

	return result, nil
}

// CheckIn submits the confirmed member set for a round.
func (c *Client) CheckIn(ctx context.Context, eventID uint, roundNo int, userCodes []string, teamCode *string) (domain.CheckInSummary, error) {
	path := fmt.Sprintf("/events/%d/rounds/%d/checkin", eventID, roundNo)
	body := map[string]interface{}{
		"user_ids": userCodes,
	}
	if teamCode != nil {
		body["team_id"] = *teamCode
	}

	var summary domain.CheckInSummary
	if err := c.do(ctx, http.MethodPost, path, body, &summary); err != nil {
		return domain.CheckInSummary{}, err
	}

	return summary, nil
}

// AssignResults submits a bulk outcome batch for a round.
func (c *Client) AssignResults(ctx context.Context, eventID uint, roundNo int, items []domain.ResultAssignment) (domain.BulkOperationResult, error) {
	path := fmt.Sprintf("/events/%d/rounds/%d/results", eventID, roundNo)
	body := map[string]interface{}{
		"results": items,
	}

	var report domain.BulkOperationResult
	if err := c.do(ctx, http.MethodPost, path, body, &report); err != nil {
		return domain.BulkOperationResult{}, err
	}

	return report, nil
}

// SearchUsers queries participants by name, email or code.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users?q="+url.QueryEscape(query), nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// do runs an authenticated request. On a 401 it refreshes the session
// (single-flight across goroutines) and retries exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	staleAccess := c.store.AccessToken()
	err := c.doOnce(ctx, method, path, body, out, true)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return err
	}

	if err := c.refreshSession(ctx, staleAccess); err != nil {
		return err
	}

	return c.doOnce(ctx, method, path, body, out, true)
}

// refreshSession exchanges the refresh token for a new pair. Concurrent
// 401s collapse into one exchange; every waiter sees its result. When
// the failed token is no longer the current one, someone else already
// refreshed and the exchange is skipped.
func (c *Client) refreshSession(ctx context.Context, staleAccess string) error {
	_, err := c.group.Do("refresh", func() (interface{}, error) {
		if c.store.AccessToken() != staleAccess {
			return nil, nil
		}

		refresh := c.store.RefreshToken()
		if refresh == "" {
			return nil, ErrSessionExpired
		}

		var resp loginResponse
		err := c.doOnce(ctx, http.MethodPost, "/auth/refresh", map[string]string{
			"refresh_token": refresh,
		}, &resp, false)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
				c.store.Clear()
				return nil, ErrSessionExpired
			}

			return nil, err
		}

		c.store.SetTokens(resp.AccessToken, resp.RefreshToken)

		return nil, nil
	})

	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding request body -> %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("client: building request -> %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.store.AccessToken())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %v %v -> %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil || apiErr.Msg == "" {
			apiErr.Msg = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decoding response -> %w", err)
	}

	return nil
}
