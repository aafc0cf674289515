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

// Package schoolapi reads lunch menus and class timetables from the
// timefor.school API. It never writes anything.
package schoolapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrUnexpectedPayload is returned when a response decodes but lacks the
// arrays the caller needs.
var ErrUnexpectedPayload = errors.New("unexpected payload shape")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Endpoint, e.Status)
}

// LunchRow is one meal as served by the lunch endpoint (NEIS field names).
type LunchRow struct {
	OfficeCode   string  `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName   string  `json:"ATPT_OFCDC_SC_NM"`
	LoadedAt     string  `json:"LOAD_DTM"`
	SchoolCode   string  `json:"SD_SCHUL_CODE"`
	SchoolName   string  `json:"SCHUL_NM"`
	MealTypeCode string  `json:"MMEAL_SC_CODE"`
	MealTypeName string  `json:"MMEAL_SC_NM"`
	Date         string  `json:"MLSV_YMD"`
	Dishes       string  `json:"DDISH_NM"`
	OriginInfo   string  `json:"ORPLC_INFO"`
	Calories     *string `json:"CAL_INFO"`
	Nutrients    *string `json:"NTR_INFO"`
	FromDate     string  `json:"MLSV_FROM_YMD"`
	ToDate       string  `json:"MLSV_TO_YMD"`
}

// Period is one timetable cell.
type Period struct {
	Period   int             `json:"period"`
	Subject  string          `json:"subject"`
	Teacher  string          `json:"teacher"`
	Replaced bool            `json:"replaced"`
	Original *OriginalPeriod `json:"original"`
}

// OriginalPeriod is what a substituted cell replaced.
type OriginalPeriod struct {
	Period  int    `json:"period"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

// TimetablePayload is the timetable endpoint's body.
type TimetablePayload struct {
	DayTime    []string   `json:"day_time"`
	Timetable  [][]Period `json:"timetable"`
	UpdateDate string     `json:"update_date"`
}

// Client calls the school data API.
type Client struct {
	baseURL    string
	schoolCode string
	httpClient *http.Client
}

// NewClient creates a client for one school.
func NewClient(baseURL, schoolCode string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		schoolCode: schoolCode,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SchoolCode returns the school this client reads.
func (c *Client) SchoolCode() string {
	return c.schoolCode
}

// Lunch fetches meals between two YYYYMMDD dates, inclusive.
func (c *Client) Lunch(ctx context.Context, startDate, endDate string) ([]LunchRow, error) {
	query := url.Values{}
	query.Set("startdate", startDate)
	query.Set("enddate", endDate)
	query.Set("schoolcode", c.schoolCode)

	var rows []LunchRow
	if err := c.get(ctx, "lunch", query, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, errors.Wrap(ErrUnexpectedPayload, "lunch")
	}
	return rows, nil
}

// Timetable fetches the class timetable; week 0 is the current week.
func (c *Client) Timetable(ctx context.Context, grade, classNo, week int) (*TimetablePayload, error) {
	query := url.Values{}
	query.Set("grade", strconv.Itoa(grade))
	query.Set("classno", strconv.Itoa(classNo))
	query.Set("week", strconv.Itoa(week))
	query.Set("schoolcode", c.schoolCode)

	var payload TimetablePayload
	if err := c.get(ctx, "timetable", query, &payload); err != nil {
		return nil, err
	}
	// Basic shape validation
	if payload.DayTime == nil || payload.Timetable == nil {
		return nil, errors.Wrap(ErrUnexpectedPayload, "timetable")
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	reqURL := c.baseURL + "/" + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrapf(err, "build %s request", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "fetch %s", endpoint)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: res.StatusCode, Status: res.Status}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(ErrUnexpectedPayload, "decode %s: %v", endpoint, err)
	}
	return nil
}
