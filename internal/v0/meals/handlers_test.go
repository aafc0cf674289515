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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"classinfo/internal/common"
	"classinfo/internal/schoolapi"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	common.InitValidator()
	require.NoError(t, RegisterValidators(common.Validator()))

	source := &fakeSource{rows: []schoolapi.LunchRow{
		lunchRow("20240311", "중식", "쌀밥"),
		lunchRow("20240312", "석식", "라면"),
	}}
	svc, repo := newService(t, source)
	h := NewHandler(repo, svc)
	h.now = func() time.Time { return kstTime(12, 10) }

	router := gin.New()
	v0 := router.Group("/api/v0")
	RegisterRoutes(v0, h)
	RegisterAdminRoutes(v0.Group("/admin"), h)

	serve := func(method, path, body string) (int, json.RawMessage) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var e struct {
			Data json.RawMessage `json:"data"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &e)
		return rec.Code, e.Data
	}

	code, data := serve(http.MethodPost, "/api/v0/admin/meals/fetch", `{"week":0}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"saved":2}`, string(data))
	assert.Equal(t, [2]string{"20240311", "20240315"}, source.ranges[0])

	code, data = serve(http.MethodGet, "/api/v0/meals?start=20240311&end=20240315", "")
	require.Equal(t, http.StatusOK, code)
	var all []Meal
	require.NoError(t, json.Unmarshal(data, &all))
	assert.Len(t, all, 2)

	code, data = serve(http.MethodGet, "/api/v0/meals?start=20240311&end=20240315&type=%EC%A4%91%EC%8B%9D", "")
	require.Equal(t, http.StatusOK, code)
	var lunches []Meal
	require.NoError(t, json.Unmarshal(data, &lunches))
	require.Len(t, lunches, 1)
	assert.Equal(t, "20240311", lunches[0].Date)

	code, _ = serve(http.MethodGet, "/api/v0/meals?start=2024-03-11&end=20240315", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(http.MethodGet, "/api/v0/meals?end=20240315", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, data = serve(http.MethodGet, "/api/v0/meals/week", "")
	require.Equal(t, http.StatusOK, code)
	var week DisplayWeek
	require.NoError(t, json.Unmarshal(data, &week))
	assert.Len(t, week.Days, 5)

	code, _ = serve(http.MethodGet, "/api/v0/meals/two-weeks", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(http.MethodPost, "/api/v0/admin/meals/fetch", `{"week":2}`)
	assert.Equal(t, http.StatusBadRequest, code)

	source.err = &schoolapi.StatusError{Endpoint: "lunch", StatusCode: 502, Status: "502 Bad Gateway"}
	code, _ = serve(http.MethodPost, "/api/v0/admin/meals/fetch", `{"week":1}`)
	assert.Equal(t, http.StatusBadGateway, code)
}
