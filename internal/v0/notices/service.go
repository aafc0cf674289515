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
	"strconv"
	"time"

	"classinfo/internal/kst"
	"classinfo/internal/v0/files"
)

// Service answers the read-side questions the site asks about notices. Every
// method takes now explicitly and computes the cutoff once.
type Service struct {
	repo  *Repository
	files *files.Repository
}

func NewService(repo *Repository, fileRepo *files.Repository) *Service {
	return &Service{repo: repo, files: fileRepo}
}

// CurrentGroups returns notices that are not past, grouped by day ascending
func (s *Service) CurrentGroups(ctx context.Context, now time.Time) ([]Group, error) {
	cutoff := kst.Cutoff(now)
	list, err := s.repo.ListDueFrom(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return GroupByDay(list, now, cutoff, false), nil
}

// PastMonths lists the months that have past notices, most recent first
func (s *Service) PastMonths(ctx context.Context, now time.Time) ([]MonthSummary, error) {
	list, err := s.repo.ListDueBefore(ctx, kst.Cutoff(now))
	if err != nil {
		return nil, err
	}
	return SummarizeMonths(list), nil
}

// PastByMonth returns a month's past notices grouped by day, most recent
// first. A malformed key yields no groups.
func (s *Service) PastByMonth(ctx context.Context, key string, now time.Time) ([]Group, error) {
	start, next, err := ParseMonthKey(key)
	if err != nil {
		return []Group{}, nil
	}
	cutoff := kst.Cutoff(now)
	upper := next.Format(kst.DateLayout)
	if cutoff < upper {
		upper = cutoff
	}
	list, err := s.repo.ListDueBetween(ctx, start.Format(kst.DateLayout), upper)
	if err != nil {
		return nil, err
	}
	return GroupByDay(list, now, cutoff, true), nil
}

// Overview bundles the current groups, the past month index and per-type counts
// of current notices
func (s *Service) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	cutoff := kst.Cutoff(now)
	current, err := s.repo.ListDueFrom(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	past, err := s.repo.ListDueBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Current:    GroupByDay(current, now, cutoff, false),
		PastMonths: SummarizeMonths(past),
		Counts:     CountByType(current),
	}, nil
}

// CopyText renders the current assessments for sharing
func (s *Service) CopyText(ctx context.Context, now time.Time) (string, error) {
	groups, err := s.CurrentGroups(ctx, now)
	if err != nil {
		return "", err
	}
	return CopyText(groups), nil
}

// Resolve finds a notice by slug, falling back to a numeric id
func (s *Service) Resolve(ctx context.Context, key string) (*Notice, error) {
	n, err := s.repo.GetBySlug(ctx, key)
	if err != nil || n != nil {
		return n, err
	}
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id)
}

// Detail returns a notice with its files, or nil if key matches nothing
func (s *Service) Detail(ctx context.Context, key string, now time.Time) (*Detail, error) {
	n, err := s.Resolve(ctx, key)
	if err != nil || n == nil {
		return nil, err
	}
	attached, err := s.files.GetNoticeFiles(ctx, n.ID)
	if err != nil {
		return nil, err
	}

	d := &Detail{Notice: *n, Files: attached, DisplayDate: n.DueDate, LongDate: n.DueDate}
	if due, err := kst.ParseDate(n.DueDate); err == nil {
		d.DisplayDate = kst.Label(due, now)
		d.LongDate = kst.LongDate(due)
		d.IsPast = kst.IsPast(due.Format(kst.DateLayout), kst.Cutoff(now))
	}
	return d, nil
}

// NoticeFiles returns the files of the notice matching key
func (s *Service) NoticeFiles(ctx context.Context, key string) ([]files.File, error) {
	n, err := s.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return []files.File{}, nil
	}
	return s.files.GetNoticeFiles(ctx, n.ID)
}
