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
	"flag"

	"classinfo/internal/database"
	"classinfo/internal/env"
	"classinfo/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func main() {
	env.Load()
	logger.Init(env.GetEnv(env.EnvLogLevel, "info"))

	path := flag.String("path", env.GetEnv(env.EnvDatabasePath, env.DefaultDatabasePath), "path to the database file")
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	db, err := database.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("failed to open database")
	}

	m, err := database.NewMigrator(db.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("failed to read schema version")
	}
	log.Info().Str("path", *path).Uint("version", version).Bool("dirty", dirty).Bool("down", *down).Msg("database migration complete")
}
