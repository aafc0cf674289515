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

package main

import (
	"context"
	"time"

	"classinfo/internal/scheduler"
	"classinfo/internal/v0/meals"
	"classinfo/internal/v0/timetable"
)

// refreshJobs keeps both timetable weeks and both meal weeks current.
func refreshJobs(interval time.Duration, tt *timetable.Service, ms *meals.Service) []scheduler.Job {
	return []scheduler.Job{
		{
			Name:      "fetch timetable - this week",
			Interval:  interval,
			Immediate: true,
			Run: func(ctx context.Context) error {
				_, err := tt.Refresh(ctx, 0)
				return err
			},
		},
		{
			Name:      "fetch timetable - next week",
			Interval:  interval,
			Immediate: true,
			Run: func(ctx context.Context) error {
				_, err := tt.Refresh(ctx, 1)
				return err
			},
		},
		{
			Name:      "fetch meals - this week",
			Interval:  interval,
			Immediate: true,
			Run: func(ctx context.Context) error {
				_, err := ms.FetchCurrentWeek(ctx, time.Now())
				return err
			},
		},
		{
			Name:      "fetch meals - next week",
			Interval:  interval,
			Immediate: true,
			Run: func(ctx context.Context) error {
				_, err := ms.FetchNextWeek(ctx, time.Now())
				return err
			},
		},
	}
}
