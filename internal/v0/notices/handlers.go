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

package notices

import (
	"net/http"
	"strconv"
	"time"

	"classinfo/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Handler initialization that holds the notice repository and read service
type Handler struct {
	repo    *Repository
	service *Service
	now     func() time.Time
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{repo: repo, service: service, now: time.Now}
}

// List returns every notice
// GET /api/v0/notices
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.internal(c, err, "list notices")
		return
	}
	common.Success(c, http.StatusOK, list)
}

// Current returns the upcoming notices grouped by day
// GET /api/v0/notices/current
func (h *Handler) Current(c *gin.Context) {
	groups, err := h.service.CurrentGroups(c.Request.Context(), h.now())
	if err != nil {
		h.internal(c, err, "current notices")
		return
	}
	common.Success(c, http.StatusOK, groups)
}

// PastMonths returns the month index of past notices
// GET /api/v0/notices/past
func (h *Handler) PastMonths(c *gin.Context) {
	months, err := h.service.PastMonths(c.Request.Context(), h.now())
	if err != nil {
		h.internal(c, err, "past months")
		return
	}
	common.Success(c, http.StatusOK, months)
}

// PastByMonth returns one month of past notices
// GET /api/v0/notices/past/:month
func (h *Handler) PastByMonth(c *gin.Context) {
	groups, err := h.service.PastByMonth(c.Request.Context(), c.Param("month"), h.now())
	if err != nil {
		h.internal(c, err, "past notices")
		return
	}
	common.Success(c, http.StatusOK, groups)
}

// GET /api/v0/notices/overview
func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), h.now())
	if err != nil {
		h.internal(c, err, "notice overview")
		return
	}
	common.Success(c, http.StatusOK, overview)
}

// GET /api/v0/notices/copy-text
func (h *Handler) CopyText(c *gin.Context) {
	text, err := h.service.CopyText(c.Request.Context(), h.now())
	if err != nil {
		h.internal(c, err, "copy text")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"text": text})
}

// Detail looks a notice up by slug or id; a miss is null data
// GET /api/v0/notices/:id
func (h *Handler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		h.internal(c, err, "notice detail")
		return
	}
	if detail == nil {
		common.Success(c, http.StatusOK, nil)
		return
	}
	common.Success(c, http.StatusOK, detail)
}

// GET /api/v0/notices/:id/files
func (h *Handler) Files(c *gin.Context) {
	list, err := h.service.NoticeFiles(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, err, "notice files")
		return
	}
	common.Success(c, http.StatusOK, list)
}

// GetByID returns a notice for the edit form
// GET /api/v0/admin/notices/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Success(c, http.StatusOK, nil)
		return
	}
	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.internal(c, err, "get notice")
		return
	}
	if n == nil {
		common.Success(c, http.StatusOK, nil)
		return
	}
	common.Success(c, http.StatusOK, n)
}

// POST /api/v0/admin/notices
func (h *Handler) Create(c *gin.Context) {
	var req CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	n, err := h.repo.Create(c.Request.Context(), req, h.now())
	if err != nil {
		h.internal(c, err, "create notice")
		return
	}
	log.Info().Int64("notice_id", n.ID).Str("slug", deref(n.Slug)).Msg("notice created")
	common.Success(c, http.StatusCreated, n)
}

// PUT /api/v0/admin/notices/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	var req UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	n, err := h.repo.Update(c.Request.Context(), id, req, h.now())
	if errors.Cause(err) == ErrNotFound {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.internal(c, err, "update notice")
		return
	}
	common.Success(c, http.StatusOK, n)
}

// DELETE /api/v0/admin/notices/:id
func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	err = h.repo.Remove(c.Request.Context(), id)
	if errors.Cause(err) == ErrNotFound {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	if err != nil {
		h.internal(c, err, "remove notice")
		return
	}
	log.Info().Int64("notice_id", id).Msg("notice removed")
	c.Status(http.StatusNoContent)
}

func (h *Handler) internal(c *gin.Context, err error, op string) {
	log.Error().Err(err).Str("op", op).Msg("notice request failed")
	common.Fail(c, http.StatusInternalServerError, "failed to "+op)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
