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
	"time"

	"classinfo/internal/v0/files"
)

// Type is the closed set of notice kinds.
type Type string

const (
	TypeAssessment Type = "수행평가"
	TypeHomework   Type = "숙제"
	TypeSupplies   Type = "준비물"
	TypeOther      Type = "기타"
)

// Types lists every notice type in display order.
var Types = []Type{TypeAssessment, TypeHomework, TypeSupplies, TypeOther}

// Valid reports whether t is one of the four notice types.
func (t Type) Valid() bool {
	switch t {
	case TypeAssessment, TypeHomework, TypeSupplies, TypeOther:
		return true
	}
	return false
}

type Notice struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Subject     string    `db:"subject" json:"subject"`
	Type        Type      `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	DueDate     string    `db:"due_date" json:"dueDate"`
	Slug        *string   `db:"slug" json:"slug"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	FileIDs     []int64   `db:"-" json:"fileIds"`
}

// ListItem is a notice as shown in listings, with a plain-text preview of its description
type ListItem struct {
	Notice
	Preview string `json:"preview"`
}

// Detail is a single notice with its attachments resolved
type Detail struct {
	Notice
	Files       []files.File `json:"files"`
	DisplayDate string       `json:"displayDate"`
	LongDate    string       `json:"longDate"`
	IsPast      bool         `json:"isPast"`
}

// Group is one due-date day of notices
type Group struct {
	Date        string     `json:"date"`
	DisplayDate string     `json:"displayDate"`
	IsToday     bool       `json:"isToday"`
	IsPast      bool       `json:"isPast"`
	Notices     []ListItem `json:"notices"`
}

// MonthSummary counts past notices in a month. Month is zero-based, as in the key.
type MonthSummary struct {
	Key   string `json:"key"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Overview struct {
	Current    []Group        `json:"current"`
	PastMonths []MonthSummary `json:"pastMonths"`
	Counts     map[Type]int   `json:"counts"`
}

type CreateNoticeRequest struct {
	Title       string  `json:"title" binding:"required"`
	Subject     string  `json:"subject" binding:"required"`
	Type        Type    `json:"type" binding:"required,noticetype"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate" binding:"required,duedate"`
	Slug        *string `json:"slug"`
	FileIDs     []int64 `json:"fileIds"`
}

// UpdateNoticeRequest replaces a notice's fields. A nil Slug keeps the
// current slug and a nil FileIDs keeps the current attachments.
type UpdateNoticeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Subject     string   `json:"subject" binding:"required"`
	Type        Type     `json:"type" binding:"required,noticetype"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate" binding:"required,duedate"`
	Slug        *string  `json:"slug"`
	FileIDs     *[]int64 `json:"fileIds"`
}
