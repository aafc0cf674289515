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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func createRequest(due, subject string) CreateNoticeRequest {
	return CreateNoticeRequest{
		Title:       subject + " 과제",
		Subject:     subject,
		Type:        TypeHomework,
		Description: "교과서 p.10",
		DueDate:     due,
	}
}

func TestCreateAssignsDistinctSlugs(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n, err := repo.Create(ctx, createRequest("2024-03-15", "수학"), now)
		require.NoError(t, err)
		require.NotNil(t, n.Slug)
		assert.False(t, seen[*n.Slug], "duplicate slug %s", *n.Slug)
		seen[*n.Slug] = true
	}
}

func TestCreateSlugCollisionGetsSuffix(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now()

	req := createRequest("2024-03-15", "수학")
	req.Slug = strptr("abcde")

	first, err := repo.Create(ctx, req, now)
	require.NoError(t, err)
	assert.Equal(t, "abcde", *first.Slug)

	second, err := repo.Create(ctx, req, now)
	require.NoError(t, err)
	assert.Equal(t, "abcde-1", *second.Slug)

	third, err := repo.Create(ctx, req, now)
	require.NoError(t, err)
	assert.Equal(t, "abcde-2", *third.Slug)
}

func TestRouteNamesAreNotUsableSlugs(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now()

	for _, name := range []string{"past", "Current", "overview", "copy_text"} {
		req := createRequest("2024-03-15", "수학")
		req.Slug = strptr(name)

		n, err := repo.Create(ctx, req, now)
		require.NoError(t, err)
		assert.Equal(t, NormalizeSlug(name)+"-1", *n.Slug)
	}

	n, err := repo.Create(ctx, createRequest("2024-03-15", "영어"), now)
	require.NoError(t, err)
	updated, err := repo.Update(ctx, n.ID, UpdateNoticeRequest{
		Title:   "영어 과제",
		Subject: "영어",
		Type:    TypeHomework,
		DueDate: "2024-03-15",
		Slug:    strptr("past"),
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "past-2", *updated.Slug)
}

func TestCreateNormalizesDueDateAndStoresFiles(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	req := createRequest("2024-03-15T00:00:00.000Z", "영어")
	req.FileIDs = []int64{7, 3}
	n, err := repo.Create(ctx, req, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", n.DueDate)
	assert.Equal(t, []int64{7, 3}, n.FileIDs)

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 3}, got.FileIDs)

	bySlug, err := repo.GetBySlug(ctx, *n.Slug)
	require.NoError(t, err)
	assert.Equal(t, n.ID, bySlug.ID)

	// 20:00 UTC is already the next morning in Seoul
	late, err := repo.Create(ctx, createRequest("2024-03-15T20:00:00Z", "영어"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", late.DueDate)
}

func TestGetMissingReturnsNil(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	n, err := repo.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = repo.GetBySlug(ctx, "zzzzz")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestListOrdersByDueDate(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now()

	for _, due := range []string{"2024-03-20", "2024-03-01", "2024-03-10"} {
		_, err := repo.Create(ctx, createRequest(due, "국어"), now)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01", list[0].DueDate)
	assert.Equal(t, "2024-03-10", list[1].DueDate)
	assert.Equal(t, "2024-03-20", list[2].DueDate)
	assert.NotNil(t, list[0].FileIDs)
}

func TestUpdateSlugRules(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	now := time.Now()

	reqA := createRequest("2024-03-15", "수학")
	reqA.Slug = strptr("alpha")
	a, err := repo.Create(ctx, reqA, now)
	require.NoError(t, err)

	reqB := createRequest("2024-03-16", "과학")
	reqB.Slug = strptr("bravo")
	reqB.FileIDs = []int64{1, 2}
	b, err := repo.Create(ctx, reqB, now)
	require.NoError(t, err)

	update := UpdateNoticeRequest{Title: "바뀐 제목", Subject: "과학", Type: TypeAssessment, DueDate: "2024-03-17"}

	// no slug keeps the current one and the attachments
	got, err := repo.Update(ctx, b.ID, update, now)
	require.NoError(t, err)
	assert.Equal(t, "bravo", *got.Slug)
	assert.Equal(t, "바뀐 제목", got.Title)
	assert.Equal(t, TypeAssessment, got.Type)
	assert.Equal(t, []int64{1, 2}, got.FileIDs)

	// its own slug is not a collision
	update.Slug = strptr("bravo")
	got, err = repo.Update(ctx, b.ID, update, now)
	require.NoError(t, err)
	assert.Equal(t, "bravo", *got.Slug)

	// another notice's slug is
	update.Slug = strptr(*a.Slug)
	got, err = repo.Update(ctx, b.ID, update, now)
	require.NoError(t, err)
	assert.Equal(t, "alpha-1", *got.Slug)

	// empty regenerates
	update.Slug = strptr("")
	got, err = repo.Update(ctx, b.ID, update, now)
	require.NoError(t, err)
	assert.Len(t, *got.Slug, SlugLength)

	empty := []int64{}
	update.FileIDs = &empty
	got, err = repo.Update(ctx, b.ID, update, now)
	require.NoError(t, err)
	assert.Empty(t, got.FileIDs)
}

func TestUpdateMissing(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	_, err := repo.Update(context.Background(), 99, UpdateNoticeRequest{Title: "x", Subject: "y", Type: TypeOther, DueDate: "2024-03-15"}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveKeepsFileRows(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	_, err := db.Exec(`INSERT INTO files (name, type, size, url, storage_id, uploaded_at) VALUES ('a', 'text/plain', 1, 'https://x/a', 'a', ?)`, now)
	require.NoError(t, err)

	req := createRequest("2024-03-15", "수학")
	req.FileIDs = []int64{1}
	n, err := repo.Create(ctx, req, now)
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, n.ID))

	var files, links int
	require.NoError(t, db.Get(&files, `SELECT COUNT(*) FROM files`))
	require.NoError(t, db.Get(&links, `SELECT COUNT(*) FROM notice_files`))
	assert.Equal(t, 1, files)
	assert.Equal(t, 0, links)

	assert.ErrorIs(t, repo.Remove(ctx, n.ID), ErrNotFound)
}
