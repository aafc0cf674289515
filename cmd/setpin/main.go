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
	"flag"

	"classinfo/internal/auth"
	"classinfo/internal/database"
	"classinfo/internal/env"
	"classinfo/internal/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	env.Load()
	logger.Init(env.GetEnv(env.EnvLogLevel, "info"))

	pin := flag.String("pin", "", "new admin PIN")
	flag.Parse()

	if *pin == "" {
		log.Fatal().Msg("usage: setpin -pin <PIN>")
	}

	db, err := database.Open(env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if err := auth.NewRepository(db).SetPin(context.Background(), *pin); err != nil {
		log.Fatal().Err(err).Msg("failed to set PIN")
	}
	log.Info().Msg("admin PIN updated")
}
