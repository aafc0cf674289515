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
	"net/http"

	"classinfo/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// ContextKeyAdmin is set to true on requests that passed RequireAdmin
	ContextKeyAdmin = "auth_admin"
)

// Middleware provides the admin gate
type Middleware struct {
	sessionStore *SessionStore
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessionStore *SessionStore) *Middleware {
	return &Middleware{sessionStore: sessionStore}
}

// RequireAdmin rejects requests without a live admin session cookie
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, err := m.sessionStore.GetSessionFromCookie(c)
		if err != nil {
			common.Abort(c, http.StatusUnauthorized, "not authenticated")
			return
		}

		valid, err := m.sessionStore.ValidateSession(c.Request.Context(), rawToken)
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			common.Abort(c, http.StatusInternalServerError, "failed to check session")
			return
		}
		if !valid {
			m.sessionStore.ClearSessionCookie(c)
			common.Abort(c, http.StatusUnauthorized, "session expired or invalid")
			return
		}

		c.Set(ContextKeyAdmin, true)
		c.Next()
	}
}
