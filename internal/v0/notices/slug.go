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
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	SlugLength    = 5
	MaxSlugLength = 48

	slugAlphabet    = "abcdefghijklmnopqrstuvwxyz"
	maxSlugAttempts = 1000
)

// reservedSlugs are static path segments under /notices that would shadow a
// notice's detail link.
var reservedSlugs = map[string]bool{
	"current":   true,
	"past":      true,
	"overview":  true,
	"copy-text": true,
}

// ErrSlugExhausted means no free suffix was found for a slug.
var ErrSlugExhausted = errors.New("no free slug")

// RandomSlug returns SlugLength random lowercase letters.
func RandomSlug() string {
	b := make([]byte, SlugLength)
	for i := range b {
		b[i] = slugAlphabet[rand.Intn(len(slugAlphabet))]
	}
	return string(b)
}

// NormalizeSlug lowercases s and keeps only a-z, 0-9 and inner hyphens.
func NormalizeSlug(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case r == ' ' || r == '_':
			sb.WriteByte('-')
		}
	}
	out := strings.Trim(sb.String(), "-")
	if len(out) > MaxSlugLength {
		out = strings.TrimRight(out[:MaxSlugLength], "-")
	}
	return out
}

// withSuffix appends -<n in base 36>, cutting base so the result fits MaxSlugLength.
func withSuffix(base string, n int) string {
	suffix := "-" + strconv.FormatInt(int64(n), 36)
	if len(base)+len(suffix) > MaxSlugLength {
		base = base[:MaxSlugLength-len(suffix)]
	}
	return base + suffix
}

// assignSlug picks a free slug starting from requested, or from a random one
// when requested normalizes to nothing. Route names count as taken. inUse
// must see the current transaction so the check and the write cannot interleave with another one.
func assignSlug(requested string, inUse func(string) (bool, error)) (string, error) {
	taken := func(slug string) (bool, error) {
		if reservedSlugs[slug] {
			return true, nil
		}
		return inUse(slug)
	}

	base := NormalizeSlug(requested)
	if base == "" {
		base = RandomSlug()
	}

	used, err := taken(base)
	if err != nil {
		return "", err
	}
	if !used {
		return base, nil
	}

	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := withSuffix(base, n)
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
	return "", ErrSlugExhausted
}
