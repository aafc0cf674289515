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
	"context"
	"strings"
	"time"

	"classinfo/internal/kst"
	"classinfo/internal/schoolapi"

	"github.com/rs/zerolog/log"
)

// Source provides lunch rows from the school data API.
type Source interface {
	Lunch(ctx context.Context, startDate, endDate string) ([]schoolapi.LunchRow, error)
}

type Service struct {
	repo   *Repository
	source Source
	now    func() time.Time
}

func NewService(repo *Repository, source Source) *Service {
	return &Service{repo: repo, source: source, now: time.Now}
}

// ParseDishes splits the API's dish text into trimmed, non-empty names.
func ParseDishes(s string) []string {
	s = strings.NewReplacer("<br/>", "\n", "<br />", "\n", "<br>", "\n", "\r", "").Replace(s)
	dishes := []string{}
	for _, d := range strings.Split(s, "\n") {
		if d = strings.TrimSpace(d); d != "" {
			dishes = append(dishes, d)
		}
	}
	return dishes
}

// ToMeals converts API rows, dropping rows without a meal type or dishes.
func ToMeals(rows []schoolapi.LunchRow) []Meal {
	meals := []Meal{}
	for _, row := range rows {
		if row.MealTypeName == "" || row.Dishes == "" {
			continue
		}
		meals = append(meals, Meal{
			Date:       row.Date,
			MealType:   row.MealTypeName,
			Dishes:     ParseDishes(row.Dishes),
			OriginInfo: row.OriginInfo,
			Calories:   row.Calories,
			Nutrients:  row.Nutrients,
			SchoolCode: row.SchoolCode,
			SchoolName: row.SchoolName,
			LoadedAt:   row.LoadedAt,
		})
	}
	return meals
}

// FetchAndSave fetches meals between two YYYYMMDD dates and upserts them,
// returning how many were written. A failed fetch writes nothing.
func (s *Service) FetchAndSave(ctx context.Context, start, end string) (int, error) {
	rows, err := s.source.Lunch(ctx, start, end)
	if err != nil {
		return 0, err
	}
	meals := ToMeals(rows)
	if len(meals) == 0 {
		log.Info().Str("start", start).Str("end", end).Msg("no meals to save")
		return 0, nil
	}
	if err := s.repo.UpsertMany(ctx, meals, s.now()); err != nil {
		return 0, err
	}
	log.Info().Str("start", start).Str("end", end).Int("meals", len(meals)).Msg("meals saved")
	return len(meals), nil
}

// FetchWeek fetches Monday to Friday of the KST week offset from now's.
func (s *Service) FetchWeek(ctx context.Context, now time.Time, offset int) (int, error) {
	monday, friday := kst.WeekRange(now, offset)
	return s.FetchAndSave(ctx, kst.FormatYMD(monday), kst.FormatYMD(friday))
}

func (s *Service) FetchCurrentWeek(ctx context.Context, now time.Time) (int, error) {
	return s.FetchWeek(ctx, now, 0)
}

func (s *Service) FetchNextWeek(ctx context.Context, now time.Time) (int, error) {
	return s.FetchWeek(ctx, now, 1)
}

// DisplayOffset is 1 from Friday 16:00 KST through Sunday, when the site
// already shows next week's menu, and 0 otherwise.
func DisplayOffset(now time.Time) int {
	local := kst.In(now)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return 1
	case time.Friday:
		if local.Hour() >= kst.CutoverHour {
			return 1
		}
	}
	return 0
}

// DisplayWeek returns the lunches of the week the site should show
func (s *Service) DisplayWeek(ctx context.Context, now time.Time) (*DisplayWeek, error) {
	offset := DisplayOffset(now)
	week, lunches, err := s.lunchWeek(ctx, now, offset)
	if err != nil {
		return nil, err
	}
	return &DisplayWeek{Week: week, Meals: lunches, WeekOffset: offset}, nil
}

// TwoWeeks returns this week's and next week's lunches
func (s *Service) TwoWeeks(ctx context.Context, now time.Time) (*TwoWeeks, error) {
	this, _, err := s.lunchWeek(ctx, now, 0)
	if err != nil {
		return nil, err
	}
	next, _, err := s.lunchWeek(ctx, now, 1)
	if err != nil {
		return nil, err
	}
	return &TwoWeeks{ThisWeek: this, NextWeek: next}, nil
}

func (s *Service) lunchWeek(ctx context.Context, now time.Time, offset int) (Week, []Meal, error) {
	monday, friday := kst.WeekRange(now, offset)
	week := Week{StartDate: kst.FormatYMD(monday), EndDate: kst.FormatYMD(friday)}

	lunches, err := s.repo.GetRange(ctx, week.StartDate, week.EndDate, LunchType)
	if err != nil {
		return week, nil, err
	}
	byDate := make(map[string]*Meal, len(lunches))
	for i := range lunches {
		byDate[lunches[i].Date] = &lunches[i]
	}

	week.Days = make([]Day, 0, 5)
	for d := monday; !d.After(friday); d = d.AddDate(0, 0, 1) {
		date := kst.FormatYMD(d)
		week.Days = append(week.Days, Day{Date: date, Meal: byDate[date]})
	}
	return week, lunches, nil
}
