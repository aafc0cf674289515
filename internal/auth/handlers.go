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

// Handler handles the PIN gate endpoints
type Handler struct {
	repo         *Repository
	sessionStore *SessionStore
}

// NewHandler creates a new auth handler
func NewHandler(repo *Repository, sessionStore *SessionStore) *Handler {
	return &Handler{
		repo:         repo,
		sessionStore: sessionStore,
	}
}

// VerifyPin checks a PIN without creating a session
// POST /api/verify-pin
func (h *Handler) VerifyPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Pin == nil || *req.Pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false})
		return
	}

	valid, err := h.repo.VerifyPin(c.Request.Context(), *req.Pin)
	if err != nil {
		log.Error().Err(err).Msg("PIN verification error")
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// Login exchanges the PIN for a session cookie
// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Pin == nil || *req.Pin == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": InvalidPinMessage})
		return
	}

	ctx := c.Request.Context()
	valid, err := h.repo.VerifyPin(ctx, *req.Pin)
	if err != nil {
		log.Error().Err(err).Msg("PIN verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": InvalidPinMessage})
		return
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": InvalidPinMessage})
		return
	}

	session, err := h.sessionStore.CreateSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create admin session")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": InvalidPinMessage})
		return
	}
	h.sessionStore.SetSessionCookie(c, session.RawToken)
	c.JSON(http.StatusOK, gin.H{"success": true, "expiresAt": session.ExpiresAt})
}

// Logout ends the current session
// POST /api/admin/logout
func (h *Handler) Logout(c *gin.Context) {
	if rawToken, err := h.sessionStore.GetSessionFromCookie(c); err == nil && rawToken != "" {
		if err := h.sessionStore.DeleteSession(c.Request.Context(), rawToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete admin session")
		}
	}
	h.sessionStore.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports whether the caller holds a live admin session
// GET /api/admin/session
func (h *Handler) Session(c *gin.Context) {
	rawToken, err := h.sessionStore.GetSessionFromCookie(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	valid, err := h.sessionStore.ValidateSession(c.Request.Context(), rawToken)
	if err != nil {
		log.Error().Err(err).Msg("session lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": valid})
}

// SetPin replaces the shared admin PIN
// PUT /api/v0/admin/pin
func (h *Handler) SetPin(c *gin.Context) {
	var req SetPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	if err := h.repo.SetPin(c.Request.Context(), req.Pin); err != nil {
		if err == ErrEmptyPin {
			common.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to set PIN")
		common.Fail(c, http.StatusInternalServerError, "failed to set PIN")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"updated": true})
}
