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

package meals

import (
	"net/http"
	"time"

	"classinfo/internal/common"
	"classinfo/internal/schoolapi"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	repo    *Repository
	service *Service
	now     func() time.Time
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{repo: repo, service: service, now: time.Now}
}

// GetRange lists meals between two YYYYMMDD dates
// GET /api/v0/meals?start=20240311&end=20240315&type=중식
func (h *Handler) GetRange(c *gin.Context) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	list, err := h.repo.GetRange(c.Request.Context(), q.Start, q.End, q.Type)
	if err != nil {
		log.Error().Err(err).Msg("get meals failed")
		common.Fail(c, http.StatusInternalServerError, "failed to load meals")
		return
	}
	common.Success(c, http.StatusOK, list)
}

// GET /api/v0/meals/week
func (h *Handler) DisplayWeek(c *gin.Context) {
	week, err := h.service.DisplayWeek(c.Request.Context(), h.now())
	if err != nil {
		log.Error().Err(err).Msg("display week failed")
		common.Fail(c, http.StatusInternalServerError, "failed to load meals")
		return
	}
	common.Success(c, http.StatusOK, week)
}

// GET /api/v0/meals/two-weeks
func (h *Handler) TwoWeeks(c *gin.Context) {
	weeks, err := h.service.TwoWeeks(c.Request.Context(), h.now())
	if err != nil {
		log.Error().Err(err).Msg("two weeks failed")
		common.Fail(c, http.StatusInternalServerError, "failed to load meals")
		return
	}
	common.Success(c, http.StatusOK, weeks)
}

// Fetch refreshes this or next week's meals from the school API
// POST /api/v0/admin/meals/fetch
func (h *Handler) Fetch(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	n, err := h.service.FetchWeek(c.Request.Context(), h.now(), req.Week)
	if err != nil {
		log.Error().Err(err).Int("week", req.Week).Msg("meal fetch failed")
		var statusErr *schoolapi.StatusError
		if errors.As(err, &statusErr) || errors.Is(err, schoolapi.ErrUnexpectedPayload) {
			common.Fail(c, http.StatusBadGateway, err.Error())
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to fetch meals")
		return
	}
	common.Success(c, http.StatusOK, gin.H{"saved": n})
}
