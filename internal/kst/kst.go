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

// Package kst holds the Korea Standard Time calendar rules shared by notices
// and meals. Every function takes the current instant as an argument.
package kst

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	// CutoverHour is the local hour from which today's notices count as past.
	CutoverHour = 16

	DateLayout = "2006-01-02"
	YMDLayout  = "20060102"
)

// Location is UTC+9 without relying on the host's zoneinfo.
var Location = time.FixedZone("KST", 9*60*60)

// Weekdays is indexed by time.Weekday (0 = Sunday).
var Weekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// In converts t to Korean local time.
func In(t time.Time) time.Time {
	return t.In(Location)
}

// StartOfDay returns local midnight of t's KST calendar day.
func StartOfDay(t time.Time) time.Time {
	t = In(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}

// Today returns now's KST calendar date as YYYY-MM-DD.
func Today(now time.Time) string {
	return In(now).Format(DateLayout)
}

// Cutoff returns the first due date that is not past. Before 16:00 KST that
// is today; from 16:00 on, today is already past and the cutoff is tomorrow.
func Cutoff(now time.Time) string {
	local := In(now)
	day := StartOfDay(local)
	if local.Hour() >= CutoverHour {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format(DateLayout)
}

// IsPast reports whether a YYYY-MM-DD date is before the cutoff.
func IsPast(date, cutoff string) bool {
	return date < cutoff
}

// ParseDate parses a due date given either as YYYY-MM-DD or as an RFC 3339
// instant. Instants land on their KST calendar day.
func ParseDate(s string) (time.Time, error) {
	if len(s) == len(DateLayout) {
		return time.ParseInLocation(DateLayout, s, Location)
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid due date %q", s)
	}
	return StartOfDay(ts), nil
}

// NormalizeDate returns the canonical YYYY-MM-DD form of a due date.
func NormalizeDate(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// ShortDate renders M/D(요일).
func ShortDate(d time.Time) string {
	d = In(d)
	return fmt.Sprintf("%d/%d(%s)", int(d.Month()), d.Day(), Weekdays[d.Weekday()])
}

// LongDate renders YYYY년 M월 D일 (요일).
func LongDate(d time.Time) string {
	d = In(d)
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", d.Year(), int(d.Month()), d.Day(), Weekdays[d.Weekday()])
}

// Label returns 오늘 for today's date and M/D(요일) for any other day.
func Label(due, now time.Time) string {
	if StartOfDay(due).Equal(StartOfDay(now)) {
		return "오늘"
	}
	return ShortDate(due)
}

// FormatYMD renders t's KST date as YYYYMMDD.
func FormatYMD(t time.Time) string {
	return In(t).Format(YMDLayout)
}

// ParseYMD parses a YYYYMMDD date at KST midnight.
func ParseYMD(s string) (time.Time, error) {
	return time.ParseInLocation(YMDLayout, s, Location)
}

// WeekRange returns Monday and Friday (at noon) of the KST week containing
// now, shifted by offsetWeeks.
func WeekRange(now time.Time, offsetWeeks int) (monday, friday time.Time) {
	local := In(now)
	diffToMon := 1 - int(local.Weekday())
	if local.Weekday() == time.Sunday {
		diffToMon = -6
	}
	diffToMon += offsetWeeks * 7
	monday = time.Date(local.Year(), local.Month(), local.Day()+diffToMon, 12, 0, 0, 0, Location)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}
