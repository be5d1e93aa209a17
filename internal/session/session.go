// Package session persists the logged-in user between runs.
package session

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"mercauca/internal/domain"
)

var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
)

// Session is what the login endpoint hands out. User is stored verbatim;
// some backend versions nest the account under a "user" key.
type Session struct {
	Token        string
	ExpiresAtUTC string
	User         json.RawMessage
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ExpiresAt parses ExpiresAtUTC. Timestamps without a zone are UTC.
func (s Session) ExpiresAt() (time.Time, bool) {
	v := strings.TrimSpace(s.ExpiresAtUTC)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Expired reports whether the session ended at or before now. Sessions
// with no readable expiry never expire locally; the backend decides.
func (s Session) Expired(now time.Time) bool {
	t, ok := s.ExpiresAt()
	return ok && !t.After(now)
}

type storedUser struct {
	domain.User
	Nested *domain.User `json:"user,omitempty"`
}

func (s Session) parseUser() storedUser {
	var u storedUser
	if len(s.User) > 0 {
		_ = json.Unmarshal(s.User, &u)
	}
	return u
}

// Profile returns the account, unwrapping a nested "user" object
func (s Session) Profile() domain.User {
	u := s.parseUser()
	if u.Nested != nil {
		return *u.Nested
	}
	return u.User
}

// UserID resolves the id the cart endpoints expect. When a nested account
// is present only its fields count.
func (s Session) UserID() string {
	return s.Profile().Key()
}

// Store persists a single session
type Store interface {
	Save(s Session) error
	Load() (*Session, error)
	Clear() error
	Close() error
}
