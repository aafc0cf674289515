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
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"classinfo/internal/kst"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PreviewLength caps the preview in runes.
const PreviewLength = 80

// CopyTextHeader starts the shareable assessment summary.
const CopyTextHeader = "📢수행평가 안내"

// ErrBadMonthKey is returned for month keys that are not YYYY-M.
var ErrBadMonthKey = errors.New("malformed month key")

// GroupByDay buckets notices by their due date. Buckets are ascending unless
// descending is set; within a bucket the input order is kept. Notices with an
// unparsable due date are logged and left out.
func GroupByDay(notices []Notice, now time.Time, cutoff string, descending bool) []Group {
	today := kst.Today(now)
	groups := []Group{}
	index := map[string]int{}

	for _, n := range notices {
		d, err := kst.ParseDate(n.DueDate)
		if err != nil {
			log.Warn().Int64("notice_id", n.ID).Str("due_date", n.DueDate).Msg("skipping notice with malformed due date")
			continue
		}
		key := d.Format(kst.DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Date:        key,
				DisplayDate: kst.Label(d, now),
				IsToday:     key == today,
				IsPast:      kst.IsPast(key, cutoff),
				Notices:     []ListItem{},
			})
		}
		groups[i].Notices = append(groups[i].Notices, ListItem{Notice: n, Preview: Preview(n.Description)})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if descending {
			return groups[a].Date > groups[b].Date
		}
		return groups[a].Date < groups[b].Date
	})
	return groups
}

// MonthKey formats t's year and zero-based month, e.g. 2024-2 for March 2024.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", t.Year(), int(t.Month())-1)
}

// ParseMonthKey returns the first day of the keyed month and of the month after it.
func ParseMonthKey(key string) (start, next time.Time, err error) {
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return start, next, ErrBadMonthKey
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 || year > 9999 {
		return start, next, ErrBadMonthKey
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 0 || month > 11 {
		return start, next, ErrBadMonthKey
	}
	start = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, kst.Location)
	return start, start.AddDate(0, 1, 0), nil
}

// SummarizeMonths counts notices per due month, most recent month first.
func SummarizeMonths(notices []Notice) []MonthSummary {
	counts := map[string]*MonthSummary{}
	for _, n := range notices {
		d, err := kst.ParseDate(n.DueDate)
		if err != nil {
			continue
		}
		key := MonthKey(d)
		s, ok := counts[key]
		if !ok {
			s = &MonthSummary{
				Key:   key,
				Year:  d.Year(),
				Month: int(d.Month()) - 1,
				Label: fmt.Sprintf("%d년 %d월", d.Year(), int(d.Month())),
			}
			counts[key] = s
		}
		s.Count++
	}

	out := make([]MonthSummary, 0, len(counts))
	for _, s := range counts {
		out = append(out, *s)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Year != out[b].Year {
			return out[a].Year > out[b].Year
		}
		return out[a].Month > out[b].Month
	})
	return out
}

// CountByType counts notices per type; every type is present.
func CountByType(notices []Notice) map[Type]int {
	counts := make(map[Type]int, len(Types))
	for _, t := range Types {
		counts[t] = 0
	}
	for _, n := range notices {
		if n.Type.Valid() {
			counts[n.Type]++
		}
	}
	return counts
}

// CopyText renders the current assessments as a chat-friendly message, one
// line per day.
func CopyText(groups []Group) string {
	lines := []string{CopyTextHeader}
	for _, g := range groups {
		var items []string
		for _, n := range g.Notices {
			if n.Type == TypeAssessment {
				items = append(items, n.Subject+" "+n.Title)
			}
		}
		if len(items) > 0 {
			lines = append(lines, g.DisplayDate+" "+strings.Join(items, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

var (
	mdImage    = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdPrefix   = regexp.MustCompile(`^\s*(#{1,6}\s+|>\s*|[-*+]\s+(\[[ xX]\]\s+)?|\d+[.)]\s+)`)
	mdEmphasis = regexp.MustCompile("(\\*\\*|__|~~|`|\\*|_)")
)

// Preview returns the first non-empty line of a markdown description as
// plain text, cut to PreviewLength runes.
func Preview(description string) string {
	for _, line := range strings.Split(description, "\n") {
		line = mdPrefix.ReplaceAllString(line, "")
		line = mdImage.ReplaceAllString(line, "$1")
		line = mdLink.ReplaceAllString(line, "$1")
		line = strings.TrimSpace(mdEmphasis.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > PreviewLength {
			runes := []rune(line)
			line = string(runes[:PreviewLength]) + "…"
		}
		return line
	}
	return ""
}
