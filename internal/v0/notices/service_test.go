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

package notices

import (
	"context"
	"testing"
	"time"

	"classinfo/internal/database/dbtest"
	"classinfo/internal/v0/files"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	repo    *Repository
	files   *files.Repository
	service *Service
}

func newServiceFixture(t *testing.T, dues ...string) *serviceFixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &serviceFixture{repo: NewRepository(db), files: files.NewRepository(db)}
	f.service = NewService(f.repo, f.files)
	for _, due := range dues {
		_, err := f.repo.Create(context.Background(), createRequest(due, "수학"), time.Now())
		require.NoError(t, err)
	}
	return f
}

func dates(groups []Group) []string {
	out := []string{}
	for _, g := range groups {
		out = append(out, g.Date)
	}
	return out
}

func TestCurrentGroupsScenario(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.repo.Create(ctx, CreateNoticeRequest{Title: "Quiz", Subject: "Math", Type: TypeAssessment, DueDate: "2024-03-15"}, time.Now())
	require.NoError(t, err)
	_, err = f.repo.Create(ctx, CreateNoticeRequest{Title: "Essay", Subject: "English", Type: TypeAssessment, DueDate: "2024-03-15"}, time.Now())
	require.NoError(t, err)

	groups, err := f.service.CurrentGroups(ctx, at(14, 9, 0))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "3/15(금)", groups[0].DisplayDate)
	assert.Len(t, groups[0].Notices, 2)

	groups, err = f.service.CurrentGroups(ctx, at(15, 9, 0))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "오늘", groups[0].DisplayDate)
}

func TestCurrentGroupsCutover(t *testing.T) {
	f := newServiceFixture(t, "2024-03-15")
	ctx := context.Background()

	groups, err := f.service.CurrentGroups(ctx, at(15, 15, 59))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15"}, dates(groups))

	groups, err = f.service.CurrentGroups(ctx, at(15, 16, 0))
	require.NoError(t, err)
	assert.Empty(t, groups)

	months, err := f.service.PastMonths(ctx, at(15, 16, 0))
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, "2024-2", months[0].Key)
}

func TestPastByMonthRange(t *testing.T) {
	f := newServiceFixture(t, "2024-02-29", "2024-03-01", "2024-03-10", "2024-03-15", "2024-03-20", "2024-04-01")
	ctx := context.Background()

	groups, err := f.service.PastByMonth(ctx, "2024-2", at(15, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10", "2024-03-01"}, dates(groups))

	groups, err = f.service.PastByMonth(ctx, "2024-2", at(15, 16, 30))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15", "2024-03-10", "2024-03-01"}, dates(groups))

	later := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	groups, err = f.service.PastByMonth(ctx, "2024-2", later)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-20", "2024-03-15", "2024-03-10", "2024-03-01"}, dates(groups))

	groups, err = f.service.PastByMonth(ctx, "march", later)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestPastMonths(t *testing.T) {
	f := newServiceFixture(t, "2024-01-05", "2024-02-29", "2024-03-01", "2024-03-10", "2024-03-20")

	months, err := f.service.PastMonths(context.Background(), at(15, 10, 0))
	require.NoError(t, err)
	require.Len(t, months, 3)
	assert.Equal(t, "2024-2", months[0].Key)
	assert.Equal(t, 2, months[0].Count)
	assert.Equal(t, "2024-1", months[1].Key)
	assert.Equal(t, "2024-0", months[2].Key)
}

func TestOverview(t *testing.T) {
	f := newServiceFixture(t, "2024-03-01", "2024-03-15", "2024-03-18")

	overview, err := f.service.Overview(context.Background(), at(15, 10, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15", "2024-03-18"}, dates(overview.Current))
	require.Len(t, overview.PastMonths, 1)
	assert.Equal(t, 1, overview.PastMonths[0].Count)
	assert.Equal(t, 2, overview.Counts[TypeHomework])
	assert.Equal(t, 0, overview.Counts[TypeAssessment])
	assert.Equal(t, "교과서 p.10", overview.Current[0].Notices[0].Preview)
}

func TestDetailBySlugOrID(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	now := at(15, 10, 0)

	file, err := f.files.CreateFileRecord(ctx, files.CreateFileRequest{
		Name: "a.pdf", Type: "application/pdf", Size: 1, URL: "https://files.example.com/a.pdf", StorageID: "a",
	}, time.Now())
	require.NoError(t, err)

	req := createRequest("2024-03-18", "과학")
	req.Slug = strptr("lab42")
	req.FileIDs = []int64{file.ID, 999}
	n, err := f.repo.Create(ctx, req, time.Now())
	require.NoError(t, err)

	d, err := f.service.Detail(ctx, "lab42", now)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, n.ID, d.ID)
	assert.Equal(t, "3/18(월)", d.DisplayDate)
	assert.Equal(t, "2024년 3월 18일 (월)", d.LongDate)
	assert.False(t, d.IsPast)
	require.Len(t, d.Files, 1)
	assert.Equal(t, "a.pdf", d.Files[0].Name)

	d, err = f.service.Detail(ctx, "1", now)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, n.ID, d.ID)

	d, err = f.service.Detail(ctx, "nothere", now)
	require.NoError(t, err)
	assert.Nil(t, d)

	list, err := f.service.NoticeFiles(ctx, "nothere")
	require.NoError(t, err)
	assert.Empty(t, list)
}
