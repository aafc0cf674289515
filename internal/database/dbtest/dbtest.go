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

// Package dbtest provides migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"classinfo/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open returns a fresh migrated in-memory database closed at test cleanup.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.Open(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db.DB))
	return db
}
