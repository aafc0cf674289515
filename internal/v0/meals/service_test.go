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
	"testing"
	"time"

	"classinfo/internal/database/dbtest"
	"classinfo/internal/kst"
	"classinfo/internal/schoolapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rows   []schoolapi.LunchRow
	err    error
	ranges [][2]string
}

func (f *fakeSource) Lunch(_ context.Context, start, end string) ([]schoolapi.LunchRow, error) {
	f.ranges = append(f.ranges, [2]string{start, end})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func strptr(s string) *string { return &s }

func lunchRow(date, mealType, dishes string) schoolapi.LunchRow {
	return schoolapi.LunchRow{
		LoadedAt:     "20240310",
		SchoolCode:   "7081492",
		SchoolName:   "테스트고등학교",
		MealTypeName: mealType,
		Date:         date,
		Dishes:       dishes,
		OriginInfo:   "쌀 : 국내산",
		Calories:     strptr("812.3 Kcal"),
	}
}

// 2024-03-11 is a Monday.
func kstTime(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, kst.Location)
}

func newService(t *testing.T, source Source) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	return NewService(repo, source), repo
}

func TestParseDishes(t *testing.T) {
	assert.Equal(t, []string{"쌀밥", "된장국 (5.6)", "김치"}, ParseDishes("쌀밥\n 된장국 (5.6) \n\n김치\n"))
	assert.Equal(t, []string{"쌀밥", "된장국", "김치"}, ParseDishes("쌀밥<br/>된장국<br/>  <br/>김치"))
	assert.Equal(t, []string{}, ParseDishes("  "))
}

func TestToMealsDropsIncompleteRows(t *testing.T) {
	rows := []schoolapi.LunchRow{
		lunchRow("20240311", "중식", "쌀밥\n김치"),
		lunchRow("20240312", "", "쌀밥"),
		lunchRow("20240313", "중식", ""),
	}
	meals := ToMeals(rows)
	require.Len(t, meals, 1)
	assert.Equal(t, "20240311", meals[0].Date)
	assert.Equal(t, []string{"쌀밥", "김치"}, []string(meals[0].Dishes))
	assert.Equal(t, "812.3 Kcal", *meals[0].Calories)
	assert.Nil(t, meals[0].Nutrients)
}

func TestFetchAndSaveIsIdempotent(t *testing.T) {
	source := &fakeSource{rows: []schoolapi.LunchRow{
		lunchRow("20240311", "중식", "쌀밥\n김치"),
		lunchRow("20240311", "석식", "라면"),
		lunchRow("20240312", "중식", "카레"),
	}}
	svc, repo := newService(t, source)
	ctx := context.Background()

	first := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	n, err := svc.FetchAndSave(ctx, "20240311", "20240315")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	before, err := repo.GetRange(ctx, "20240311", "20240315", "")
	require.NoError(t, err)
	require.Len(t, before, 3)

	svc.now = func() time.Time { return first.Add(time.Hour) }
	_, err = svc.FetchAndSave(ctx, "20240311", "20240315")
	require.NoError(t, err)

	after, err := repo.GetRange(ctx, "20240311", "20240315", "")
	require.NoError(t, err)
	require.Len(t, after, 3)
	for i := range after {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.False(t, after[i].EditedAt.Before(before[i].EditedAt))
	}
}

func TestFetchAndSaveUpdatesExistingRow(t *testing.T) {
	source := &fakeSource{rows: []schoolapi.LunchRow{lunchRow("20240311", "중식", "쌀밥")}}
	svc, repo := newService(t, source)
	ctx := context.Background()

	_, err := svc.FetchAndSave(ctx, "20240311", "20240311")
	require.NoError(t, err)

	source.rows = []schoolapi.LunchRow{lunchRow("20240311", "중식", "잡곡밥\n미역국")}
	_, err = svc.FetchAndSave(ctx, "20240311", "20240311")
	require.NoError(t, err)

	got, err := repo.GetRange(ctx, "20240311", "20240311", LunchType)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"잡곡밥", "미역국"}, []string(got[0].Dishes))
}

func TestFetchAndSaveFailureWritesNothing(t *testing.T) {
	source := &fakeSource{err: &schoolapi.StatusError{Endpoint: "lunch", StatusCode: 500, Status: "500 Internal Server Error"}}
	svc, repo := newService(t, source)

	_, err := svc.FetchAndSave(context.Background(), "20240311", "20240315")
	require.Error(t, err)

	got, err := repo.GetRange(context.Background(), "00000000", "99999999", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchWeekRanges(t *testing.T) {
	source := &fakeSource{rows: []schoolapi.LunchRow{}}
	svc, _ := newService(t, source)
	ctx := context.Background()

	_, err := svc.FetchCurrentWeek(ctx, kstTime(13, 10))
	require.NoError(t, err)
	_, err = svc.FetchNextWeek(ctx, kstTime(13, 10))
	require.NoError(t, err)
	_, err = svc.FetchCurrentWeek(ctx, kstTime(17, 10))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"20240311", "20240315"},
		{"20240318", "20240322"},
		{"20240311", "20240315"},
	}, source.ranges)
}

func TestDisplayOffset(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"monday", kstTime(11, 9), 0},
		{"friday before cutover", kstTime(15, 15), 0},
		{"friday at cutover", kstTime(15, 16), 1},
		{"saturday", kstTime(16, 9), 1},
		{"sunday", kstTime(17, 23), 1},
		{"friday 16:00 KST given in UTC", time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayOffset(tt.now))
		})
	}
}

func TestDisplayWeekAndTwoWeeks(t *testing.T) {
	source := &fakeSource{rows: []schoolapi.LunchRow{
		lunchRow("20240311", "중식", "쌀밥"),
		lunchRow("20240311", "석식", "라면"),
		lunchRow("20240313", "중식", "카레"),
		lunchRow("20240318", "중식", "비빔밥"),
	}}
	svc, _ := newService(t, source)
	ctx := context.Background()
	_, err := svc.FetchAndSave(ctx, "20240311", "20240322")
	require.NoError(t, err)

	week, err := svc.DisplayWeek(ctx, kstTime(12, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, week.WeekOffset)
	assert.Equal(t, "20240311", week.StartDate)
	assert.Equal(t, "20240315", week.EndDate)
	require.Len(t, week.Meals, 2)
	require.Len(t, week.Days, 5)
	require.NotNil(t, week.Days[0].Meal)
	assert.Equal(t, LunchType, week.Days[0].Meal.MealType)
	assert.Nil(t, week.Days[1].Meal)
	require.NotNil(t, week.Days[2].Meal)
	assert.Equal(t, "20240315", week.Days[4].Date)

	week, err = svc.DisplayWeek(ctx, kstTime(16, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, week.WeekOffset)
	assert.Equal(t, "20240318", week.StartDate)
	require.Len(t, week.Meals, 1)

	both, err := svc.TwoWeeks(ctx, kstTime(12, 10))
	require.NoError(t, err)
	assert.Equal(t, "20240311", both.ThisWeek.StartDate)
	assert.Equal(t, "20240318", both.NextWeek.StartDate)
	require.NotNil(t, both.NextWeek.Days[0].Meal)
	assert.Equal(t, []string{"비빔밥"}, []string(both.NextWeek.Days[0].Meal.Dishes))
}
