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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"classinfo/internal/database/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router   *gin.Engine
	repo     *Repository
	sessions *SessionStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	repo := NewRepository(db)
	sessions := NewSessionStore(db, 0, false)
	handler := NewHandler(repo, sessions)
	mw := NewMiddleware(sessions)

	router := gin.New()
	api := router.Group("/api")
	RegisterRoutes(api, handler)
	admin := api.Group("/v0/admin")
	admin.Use(mw.RequireAdmin())
	RegisterAdminRoutes(admin, handler)

	return &fixture{router: router, repo: repo, sessions: sessions}
}

func (f *fixture) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			return ck
		}
	}
	return nil
}

func TestVerifyPin(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantValid  bool
	}{
		{name: "missing pin", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "empty pin", body: `{"pin":""}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "wrong pin", body: `{"pin":"0000"}`, wantStatus: http.StatusOK},
		{name: "default pin", body: `{"pin":"1234"}`, wantStatus: http.StatusOK, wantValid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/verify-pin", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantValid, decode(t, rec)["valid"])
		})
	}
}

func TestLoginWrongPin(t *testing.T) {
	f := setup(t)

	for _, body := range []string{`{"pin":"0000"}`, `{}`} {
		rec := f.do(http.MethodPost, "/api/admin/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		out := decode(t, rec)
		assert.Equal(t, false, out["success"])
		assert.Equal(t, "잘못된 PIN입니다", out["error"])
		assert.Nil(t, sessionCookie(rec))
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	f := setup(t)

	// unauthenticated
	rec := f.do(http.MethodPut, "/api/v0/admin/pin", `{"pin":"9999"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/admin/login", `{"pin":"1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ck := sessionCookie(rec)
	require.NotNil(t, ck)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 86400, ck.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.True(t, ck.HttpOnly)
	assert.NotEqual(t, "1234", ck.Value, "cookie never carries the PIN")

	rec = f.do(http.MethodGet, "/api/admin/session", "", ck)
	assert.Equal(t, true, decode(t, rec)["authenticated"])

	rec = f.do(http.MethodPut, "/api/v0/admin/pin", `{"pin":"9999"}`, ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	ok, err := f.repo.VerifyPin(context.Background(), "9999")
	require.NoError(t, err)
	assert.True(t, ok)

	rec = f.do(http.MethodPost, "/api/admin/logout", "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/admin/session", "", ck)
	assert.Equal(t, false, decode(t, rec)["authenticated"])
	rec = f.do(http.MethodPut, "/api/v0/admin/pin", `{"pin":"1111"}`, ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetPinValidation(t *testing.T) {
	f := setup(t)
	rec := f.do(http.MethodPost, "/api/admin/login", `{"pin":"1234"}`)
	ck := sessionCookie(rec)
	require.NotNil(t, ck)

	rec = f.do(http.MethodPut, "/api/v0/admin/pin", `{}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = f.do(http.MethodPut, "/api/v0/admin/pin", `{"pin":"   "}`, ck)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionExpiry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	session, err := f.sessions.CreateSession(ctx)
	require.NoError(t, err)

	valid, err := f.sessions.ValidateSession(ctx, session.RawToken)
	require.NoError(t, err)
	assert.True(t, valid)

	f.sessions.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	valid, err = f.sessions.ValidateSession(ctx, session.RawToken)
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, f.sessions.CleanupExpiredSessions(ctx))
	var rows int
	require.NoError(t, f.repo.db.Get(&rows, `SELECT COUNT(*) FROM admin_sessions`))
	assert.Equal(t, 0, rows)
}
