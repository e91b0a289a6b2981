package credstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// GoTrueStore talks to the Supabase auth REST API.
type GoTrueStore struct {
	baseURL    string // ex: https://<project>.supabase.co/auth/v1
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewGoTrueStore() (*GoTrueStore, error) {
	base := strings.TrimRight(os.Getenv("SUPABASE_URL"), "/")
	if base == "" {
		return nil, fmt.Errorf("SUPABASE_URL environment variable is not set")
	}
	anon := os.Getenv("SUPABASE_ANON_KEY")
	if anon == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY environment variable is not set")
	}

	return &GoTrueStore{
		baseURL:    base + "/auth/v1",
		anonKey:    anon,
		serviceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *GoTrueStore) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}
	if metadata != nil {
		body["data"] = metadata
	}

	var out Session
	if err := s.do(ctx, http.MethodPost, "/signup", s.anonKey, s.anonKey, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GoTrueStore) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var out Session
	err := s.do(ctx, http.MethodPost, "/token?grant_type=password", s.anonKey, s.anonKey, body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GoTrueStore) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var out User
	if err := s.do(ctx, http.MethodGet, "/user", s.anonKey, accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *GoTrueStore) UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]any) error {
	if s.serviceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is not set; cannot update user metadata")
	}
	body := map[string]any{"user_metadata": metadata}
	return s.do(ctx, http.MethodPut, "/admin/users/"+userID, s.serviceKey, s.serviceKey, body, nil)
}

func (s *GoTrueStore) do(ctx context.Context, method, path, apiKey, bearer string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if strings.HasPrefix(path, "/token") &&
		(resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized) {
		// GoTrue reports wrong email/password as 400 invalid_grant
		return ErrInvalidCredentials
	}
	if path == "/user" && resp.StatusCode == http.StatusUnauthorized {
		// expired or revoked access token
		return ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("gotrue %s %s: status %d: %s", method, path, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
