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

// Command fetch refreshes the timetable and meals once, for running from cron
// instead of the server's background jobs.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"classinfo/internal/database"
	"classinfo/internal/env"
	"classinfo/internal/logger"
	"classinfo/internal/schoolapi"
	"classinfo/internal/v0/meals"
	"classinfo/internal/v0/timetable"

	"github.com/rs/zerolog/log"
)

func main() {
	env.Load()
	logger.Init(env.GetEnv(env.EnvLogLevel, "info"))

	what := flag.String("only", "", "fetch only \"timetable\" or \"meals\"")
	week := flag.Int("week", -1, "fetch only this week offset (0 or 1)")
	flag.Parse()

	db, err := database.Open(env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	client := schoolapi.NewClient(
		env.GetEnv(env.EnvSchoolAPIBaseURL, env.DefaultSchoolAPIBaseURL),
		env.GetEnv(env.EnvSchoolCode, env.DefaultSchoolCode),
		env.GetDuration(env.EnvSchoolAPITimeout, 10*time.Second),
	)
	tt := timetable.NewService(
		timetable.NewRepository(db),
		client,
		env.GetInt(env.EnvTimetableGrade, env.DefaultTimetableGrade),
		env.GetInt(env.EnvTimetableClass, env.DefaultTimetableClass),
	)
	ms := meals.NewService(meals.NewRepository(db), client)

	weeks := []int{0, 1}
	if *week >= 0 {
		weeks = []int{*week}
	}

	ctx := context.Background()
	now := time.Now()
	failed := false
	for _, w := range weeks {
		if *what == "" || *what == "timetable" {
			if _, err := tt.Refresh(ctx, w); err != nil {
				log.Error().Err(err).Int("week", w).Msg("timetable fetch failed")
				failed = true
			}
		}
		if *what == "" || *what == "meals" {
			if _, err := ms.FetchWeek(ctx, now, w); err != nil {
				log.Error().Err(err).Int("week", w).Msg("meal fetch failed")
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}
