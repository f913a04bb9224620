// Package client is the Go rendition of the browser application: it holds
// the session token, attaches it to every request, and applies list
// filtering and pagination over a fetched snapshot.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Citizen is the wire representation of a citizen record.
type Citizen struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthDate     string `json:"birth_date"`
	Address       string `json:"address"`
	MaritalStatus string `json:"marital_status"`
	Citizenship   string `json:"citizenship"`
}

// Session talks to the citizen registry API on behalf of one user. It holds
// at most one token; absence of a token means unauthenticated.
type Session struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

// NewSession creates a session against the given base URL, restoring any
// previously stored token from the store.
func NewSession(baseURL string, store TokenStore) *Session {
	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
	}
}

// Token returns the stored token, and whether one is present.
func (s *Session) Token() (string, bool) {
	token, err := s.store.Load()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Register creates a new user account. No token is required or stored.
func (s *Session) Register(ctx context.Context, username, password, role string) error {
	body := map[string]string{"username": username, "password": password, "role": role}
	resp, err := s.do(ctx, http.MethodPost, "/users/register", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// Login authenticates and stores the issued token. On failure nothing is
// stored and a readable error is returned.
func (s *Session) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	resp, err := s.do(ctx, http.MethodPost, "/users/login", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if result.Token == "" {
		return fmt.Errorf("login succeeded but no token was returned")
	}

	if err := s.store.Save(result.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout discards the stored token. Tokens are stateless server-side, so
// this is the whole logout.
func (s *Session) Logout() error {
	return s.store.Clear()
}

// CreateCitizen creates a record and returns its assigned id.
func (s *Session) CreateCitizen(ctx context.Context, c Citizen) (int64, error) {
	resp, err := s.do(ctx, http.MethodPost, "/citizens", c, true)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, apiError(resp)
	}

	var result struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return result.ID, nil
}

// ListCitizens fetches the full snapshot of records.
func (s *Session) ListCitizens(ctx context.Context) ([]Citizen, error) {
	resp, err := s.do(ctx, http.MethodGet, "/citizens", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var citizens []Citizen
	if err := json.NewDecoder(resp.Body).Decode(&citizens); err != nil {
		return nil, fmt.Errorf("decode citizens: %w", err)
	}
	return citizens, nil
}

// UpdateCitizen replaces all fields of the record matching id.
func (s *Session) UpdateCitizen(ctx context.Context, id int64, c Citizen) error {
	resp, err := s.do(ctx, http.MethodPut, fmt.Sprintf("/citizens/%d", id), c, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// DeleteCitizen removes the record matching id.
func (s *Session) DeleteCitizen(ctx context.Context, id int64) error {
	resp, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("/citizens/%d", id), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// do issues a request, attaching the bearer token when authed is true.
// Authenticated calls fail client-side with ErrNotLoggedIn when no token is
// stored, independent of the server's own gate.
func (s *Session) do(ctx context.Context, method, path string, body any, authed bool) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, ok := s.Token()
		if !ok {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", method, path, err)
	}
	return resp, nil
}

// apiError turns a non-success response into a readable error, preferring
// the server's {"error": ...} body.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("%s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
