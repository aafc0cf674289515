//   This project is the class information backend: homework and assessment notices, the weekly timetable and school meals.
//   Class Info Copyright (C) 2025 Class Info contributors
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const (
	// SessionCookieName is the name of the admin session cookie
	SessionCookieName = "admin_authenticated"

	// DefaultSessionDuration is the default session lifetime
	DefaultSessionDuration = 24 * time.Hour
)

// SessionStore manages server-side admin sessions. The cookie carries an
// opaque token; only its hash is stored.
type SessionStore struct {
	db              *sqlx.DB
	sessionDuration time.Duration
	secureCookie    bool
	now             func() time.Time
}

// NewSessionStore creates a new session store
func NewSessionStore(db *sqlx.DB, sessionDuration time.Duration, secureCookie bool) *SessionStore {
	if sessionDuration == 0 {
		sessionDuration = DefaultSessionDuration
	}
	return &SessionStore{
		db:              db,
		sessionDuration: sessionDuration,
		secureCookie:    secureCookie,
		now:             time.Now,
	}
}

// CreateSession creates a new admin session
func (s *SessionStore) CreateSession(ctx context.Context) (*SessionWithRaw, error) {
	rawToken, tokenHash, err := GenerateToken()
	if err != nil {
		return nil, errors.Wrap(err, "generate session token")
	}
	now := s.now().UTC()
	expiresAt := now.Add(s.sessionDuration)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (token_hash, expires_at, created_at) VALUES (?, ?, ?)
	`, tokenHash, expiresAt.Unix(), now)
	if err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	return &SessionWithRaw{
		Session: Session{
			TokenHash: tokenHash,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		},
		RawToken: rawToken,
	}, nil
}

// ValidateSession reports whether rawToken names a live session
func (s *SessionStore) ValidateSession(ctx context.Context, rawToken string) (bool, error) {
	if rawToken == "" {
		return false, nil
	}
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM admin_sessions WHERE token_hash = ? AND expires_at > ?
	`, hashToken(rawToken), s.now().Unix())
	if err != nil {
		return false, errors.Wrap(err, "validate session")
	}
	return count > 0, nil
}

// DeleteSession removes a session
func (s *SessionStore) DeleteSession(ctx context.Context, rawToken string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token_hash = ?", hashToken(rawToken))
	return errors.Wrap(err, "delete session")
}

// CleanupExpiredSessions removes all expired sessions
func (s *SessionStore) CleanupExpiredSessions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE expires_at <= ?", s.now().Unix())
	return errors.Wrap(err, "cleanup sessions")
}

// SetSessionCookie sets the session cookie on the response
func (s *SessionStore) SetSessionCookie(c *gin.Context, rawToken string) {
	maxAge := int(s.sessionDuration.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		SessionCookieName,
		rawToken,
		maxAge,
		"/",
		"",
		s.secureCookie,
		true, // httpOnly
	)
}

// ClearSessionCookie removes the session cookie
func (s *SessionStore) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		s.secureCookie,
		true,
	)
}

// GetSessionFromCookie retrieves the session token from the request cookie
func (s *SessionStore) GetSessionFromCookie(c *gin.Context) (string, error) {
	return c.Cookie(SessionCookieName)
}
