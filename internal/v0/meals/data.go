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
	"database/sql"
	"time"

	"classinfo/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const mealColumns = `id, date, meal_type, dishes, origin_info, calories, nutrients, school_code, school_name, loaded_at, edited_at`

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new meal repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetRange returns meals dated between start and end (YYYYMMDD, inclusive),
// optionally of one meal type, ordered by date
func (r *Repository) GetRange(ctx context.Context, start, end, mealType string) ([]Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE date >= ? AND date <= ?`
	args := []interface{}{start, end}
	if mealType != "" {
		query += ` AND meal_type = ?`
		args = append(args, mealType)
	}
	query += ` ORDER BY date, meal_type`

	result := []Meal{}
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, errors.Wrap(err, "get meals")
	}
	return result, nil
}

// UpsertMany writes each meal onto the row for its date and meal type,
// inserting when there is none. All meals commit together.
func (r *Repository) UpsertMany(ctx context.Context, meals []Meal, now time.Time) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, m := range meals {
			var id int64
			err := tx.GetContext(ctx, &id, `SELECT id FROM meals WHERE date = ? AND meal_type = ?`, m.Date, m.MealType)
			if err == sql.ErrNoRows {
				_, err = tx.ExecContext(ctx, `
					INSERT INTO meals (date, meal_type, dishes, origin_info, calories, nutrients, school_code, school_name, loaded_at, edited_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					m.Date, m.MealType, m.Dishes, m.OriginInfo, m.Calories, m.Nutrients, m.SchoolCode, m.SchoolName, m.LoadedAt, now.UTC(),
				)
				if err != nil {
					return errors.Wrapf(err, "insert meal %s %s", m.Date, m.MealType)
				}
				continue
			}
			if err != nil {
				return errors.Wrap(err, "find meal")
			}

			_, err = tx.ExecContext(ctx, `
				UPDATE meals
				SET dishes = ?, origin_info = ?, calories = ?, nutrients = ?, school_code = ?, school_name = ?, loaded_at = ?, edited_at = ?
				WHERE id = ?`,
				m.Dishes, m.OriginInfo, m.Calories, m.Nutrients, m.SchoolCode, m.SchoolName, m.LoadedAt, now.UTC(), id,
			)
			if err != nil {
				return errors.Wrapf(err, "update meal %d", id)
			}
		}
		return nil
	})
}
