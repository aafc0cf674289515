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
	"time"

	"classinfo/internal/database"
)

// LunchType is the meal type name the site shows.
const LunchType = "중식"

// Meal is one served meal, unique per date and meal type
type Meal struct {
	ID         int64               `db:"id" json:"id"`
	Date       string              `db:"date" json:"date"`
	MealType   string              `db:"meal_type" json:"mealType"`
	Dishes     database.StringList `db:"dishes" json:"dishes"`
	OriginInfo string              `db:"origin_info" json:"originInfo"`
	Calories   *string             `db:"calories" json:"calories"`
	Nutrients  *string             `db:"nutrients" json:"nutrients"`
	SchoolCode string              `db:"school_code" json:"schoolCode"`
	SchoolName string              `db:"school_name" json:"schoolName"`
	LoadedAt   string              `db:"loaded_at" json:"loadedAt"`
	EditedAt   time.Time           `db:"edited_at" json:"editedAt"`
}

// Day is one weekday with its lunch, if any
type Day struct {
	Date string `json:"date"`
	Meal *Meal  `json:"meal"`
}

type Week struct {
	StartDate string `json:"startdate"`
	EndDate   string `json:"enddate"`
	Days      []Day  `json:"days"`
}

type DisplayWeek struct {
	Week
	Meals      []Meal `json:"meals"`
	WeekOffset int    `json:"weekOffset"`
}

type TwoWeeks struct {
	ThisWeek Week `json:"thisWeek"`
	NextWeek Week `json:"nextWeek"`
}

type RangeQuery struct {
	Start string `form:"start" binding:"required,yyyymmdd"`
	End   string `form:"end" binding:"required,yyyymmdd"`
	Type  string `form:"type"`
}

type FetchRequest struct {
	Week int `json:"week" binding:"min=0,max=1"`
}
