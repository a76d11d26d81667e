// Package session keeps the authenticated session state behind the
// cookie. The cookie itself carries only an opaque id; everything else
// lives server-side.
package session

import (
	"context"
	"time"
)

// Session is the server-side state bound to one cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	OpenID    string    `json:"open_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions for the configured TTL.
type Store interface {
	Create(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
