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
	"database/sql"
	"time"

	"classinfo/internal/database"
	"classinfo/internal/schoolapi"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new timetable repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetByWeek returns the stored timetable for week, or nil if none was fetched yet
func (r *Repository) GetByWeek(ctx context.Context, week int) (*Timetable, error) {
	var t Timetable
	err := r.db.GetContext(ctx, &t, `
		SELECT id, week, day_time, timetable, update_date, edited_at
		FROM timetables WHERE week = ?`, week)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get timetable week %d", week)
	}
	return &t, nil
}

// Upsert stores the payload as the one row for week and returns its id
func (r *Repository) Upsert(ctx context.Context, week int, payload *schoolapi.TimetablePayload, now time.Time) (int64, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &id, `SELECT id FROM timetables WHERE week = ?`, week)
		switch {
		case err == sql.ErrNoRows:
			res, err := tx.ExecContext(ctx, `
				INSERT INTO timetables (week, day_time, timetable, update_date, edited_at)
				VALUES (?, ?, ?, ?, ?)`,
				week, database.StringList(payload.DayTime), Grid(payload.Timetable), payload.UpdateDate, now.UTC(),
			)
			if err != nil {
				return errors.Wrap(err, "insert timetable")
			}
			id, err = res.LastInsertId()
			return errors.Wrap(err, "insert timetable")
		case err != nil:
			return errors.Wrap(err, "find timetable")
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE timetables SET day_time = ?, timetable = ?, update_date = ?, edited_at = ?
			WHERE id = ?`,
			database.StringList(payload.DayTime), Grid(payload.Timetable), payload.UpdateDate, now.UTC(), id,
		)
		return errors.Wrap(err, "update timetable")
	})
	return id, err
}
