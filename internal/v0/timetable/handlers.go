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

package timetable

import (
	"net/http"

	"classinfo/internal/common"
	"classinfo/internal/schoolapi"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	repo    *Repository
	service *Service
}

func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// GetByWeek returns the stored timetable or null
// GET /api/v0/timetable?week=0
func (h *Handler) GetByWeek(c *gin.Context) {
	var q WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	t, err := h.repo.GetByWeek(c.Request.Context(), q.Week)
	if err != nil {
		log.Error().Err(err).Int("week", q.Week).Msg("get timetable failed")
		common.Fail(c, http.StatusInternalServerError, "failed to load timetable")
		return
	}
	if t == nil {
		common.Success(c, http.StatusOK, nil)
		return
	}
	common.Success(c, http.StatusOK, t)
}

// Fetch refreshes one week from the school API
// POST /api/v0/admin/timetable/fetch
func (h *Handler) Fetch(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	ctx := c.Request.Context()
	if _, err := h.service.Refresh(ctx, req.Week); err != nil {
		log.Error().Err(err).Int("week", req.Week).Msg("timetable fetch failed")
		var statusErr *schoolapi.StatusError
		if errors.As(err, &statusErr) || errors.Is(err, schoolapi.ErrUnexpectedPayload) {
			common.Fail(c, http.StatusBadGateway, err.Error())
			return
		}
		common.Fail(c, http.StatusInternalServerError, "failed to fetch timetable")
		return
	}
	t, err := h.repo.GetByWeek(ctx, req.Week)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "failed to load timetable")
		return
	}
	common.Success(c, http.StatusOK, t)
}
