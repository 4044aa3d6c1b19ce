package model

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a Telegram user to a backend login. It is created on login,
// refreshed on demand and deleted on logout or expiry; it is passed
// explicitly to every operation that needs the caller's identity.
type Session struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Token      string    `json:"-"`
	User       User      `json:"user"`
	Children   []Child   `json:"children"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsValid checks that the session has a token and has not expired at now.
func (s *Session) IsValid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return now.Before(s.ExpiresAt)
}

// HasRole reports whether the logged-in user has one of roles.
func (s *Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}

// Child finds one of the session's children by id.
func (s *Session) Child(id string) (*Child, bool) {
	for i := range s.Children {
		if s.Children[i].ID == id {
			return &s.Children[i], true
		}
	}
	return nil, false
}
