package models

import "time"

// Session is the authenticated state of the client. The zero value means
// "logged out".
type Session struct {
	Token     string
	Username  string
	UserID    int
	IsAdmin   bool
	ExpiresAt time.Time
}

func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the token carries an expiry that lies before now.
// Tokens without an exp claim never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt)
}

// Me is the /me response.
type Me struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	IsAdmin  FlexBool `json:"is_admin"`
}
