// Package credstore wraps the hosted credential service (Supabase GoTrue).
// Account custody, password verification, and session issuance all live
// there; this side only ever reads or writes the metadata keys is_admin,
// full_name, and department.
package credstore

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type Store interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*User, error)
	// UpdateUserMetadata merges the given keys into the account's metadata
	// bag. Requires service-role credentials.
	UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]any) error
}
