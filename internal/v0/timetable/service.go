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
	"context"
	"time"

	"classinfo/internal/schoolapi"

	"github.com/rs/zerolog/log"
)

// Source provides timetables from the school data API.
type Source interface {
	Timetable(ctx context.Context, grade, classNo, week int) (*schoolapi.TimetablePayload, error)
}

// Service fetches timetables for one class and stores them
type Service struct {
	repo    *Repository
	source  Source
	grade   int
	classNo int
	now     func() time.Time
}

func NewService(repo *Repository, source Source, grade, classNo int) *Service {
	return &Service{repo: repo, source: source, grade: grade, classNo: classNo, now: time.Now}
}

// FetchAndSave fetches one week and upserts it. Nothing is written when the
// fetch fails or the payload is malformed.
func (s *Service) FetchAndSave(ctx context.Context, grade, classNo, week int) (int64, error) {
	payload, err := s.source.Timetable(ctx, grade, classNo, week)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.Upsert(ctx, week, payload, s.now())
	if err != nil {
		return 0, err
	}
	log.Info().Int("week", week).Int("days", len(payload.DayTime)).Msg("timetable saved")
	return id, nil
}

// Refresh fetches week for the configured class
func (s *Service) Refresh(ctx context.Context, week int) (int64, error) {
	return s.FetchAndSave(ctx, s.grade, s.classNo, week)
}
