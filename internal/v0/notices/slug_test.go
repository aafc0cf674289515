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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSlug(t *testing.T) {
	for i := 0; i < 100; i++ {
		s := RandomSlug()
		require.Len(t, s, SlugLength)
		for _, r := range s {
			assert.True(t, r >= 'a' && r <= 'z', s)
		}
	}
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "my-slug-1", NormalizeSlug("  My Slug_1! "))
	assert.Equal(t, "abc", NormalizeSlug("--abc--"))
	assert.Equal(t, "", NormalizeSlug("수학"))
	assert.Len(t, NormalizeSlug(strings.Repeat("ab", 40)), MaxSlugLength)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "abcde-1", withSuffix("abcde", 1))
	assert.Equal(t, "abcde-a", withSuffix("abcde", 10))
	assert.Equal(t, "abcde-10", withSuffix("abcde", 36))

	long := withSuffix(strings.Repeat("x", MaxSlugLength), 1)
	assert.Len(t, long, MaxSlugLength)
	assert.True(t, strings.HasSuffix(long, "-1"))
}

func TestAssignSlug(t *testing.T) {
	used := map[string]bool{"abcde": true, "abcde-1": true}
	taken := func(s string) (bool, error) { return used[s], nil }

	got, err := assignSlug("abcde", taken)
	require.NoError(t, err)
	assert.Equal(t, "abcde-2", got)

	got, err = assignSlug("fresh", taken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	got, err = assignSlug("", taken)
	require.NoError(t, err)
	assert.Len(t, got, SlugLength)
}

func TestAssignSlugSkipsRouteNames(t *testing.T) {
	free := func(string) (bool, error) { return false, nil }

	for _, name := range []string{"current", "past", "overview", "copy-text"} {
		got, err := assignSlug(name, free)
		require.NoError(t, err)
		assert.Equal(t, name+"-1", got)
	}

	got, err := assignSlug("past-due", free)
	require.NoError(t, err)
	assert.Equal(t, "past-due", got)
}

func TestAssignSlugExhausted(t *testing.T) {
	_, err := assignSlug("abcde", func(string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, ErrSlugExhausted)
}
