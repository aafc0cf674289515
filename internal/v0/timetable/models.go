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
	"database/sql/driver"
	"time"

	"classinfo/internal/database"
	"classinfo/internal/schoolapi"
)

// Grid is the timetable by day, each day a list of periods.
type Grid [][]schoolapi.Period

func (g Grid) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	return database.MarshalJSON(g)
}

func (g *Grid) Scan(src interface{}) error {
	return database.ScanJSON(src, g)
}

// Timetable is the stored grid for one week offset (0 current, 1 next)
type Timetable struct {
	ID         int64               `db:"id" json:"id"`
	Week       int                 `db:"week" json:"week"`
	DayTime    database.StringList `db:"day_time" json:"day_time"`
	Timetable  Grid                `db:"timetable" json:"timetable"`
	UpdateDate string              `db:"update_date" json:"update_date"`
	EditedAt   time.Time           `db:"edited_at" json:"editedAt"`
}

type WeekQuery struct {
	Week int `form:"week" binding:"min=0,max=1"`
}

type FetchRequest struct {
	Week int `json:"week" binding:"min=0,max=1"`
}
