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

package common

import (
	"context"
	"net/http"
	"time"

	"classinfo/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Pinger is anything with a health check, usually the database handle.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type StatusResponse struct {
	DatabaseLatency string `json:"database_latency"`
	Database        string `json:"database"`
	Uptime          string `json:"uptime"`
}

// Uptime Logic
var startTime = time.Now()

func uptime() time.Duration {
	return time.Since(startTime)
}

// Ping Logic
func ping(ctx context.Context, db Pinger) (time.Duration, error) {
	start := time.Now()
	err := db.PingContext(ctx)
	return time.Since(start), err
}

// StatusHandler reports uptime and database reachability
func StatusHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		latency, err := ping(ctx, db)
		data := StatusResponse{
			DatabaseLatency: latency.String(),
			Database:        "ok",
			Uptime:          uptime().Truncate(time.Second).String(),
		}
		if err != nil {
			log.Error().Err(err).Msg("database ping failed")
			data.Database = "unreachable"
			c.JSON(http.StatusServiceUnavailable, CreateAPIResponse(data, []string{"database unreachable"}, logger.GetRequestID(c)))
			return
		}
		Success(c, http.StatusOK, data)
	}
}

func RegisterRoutes(rg *gin.RouterGroup, db Pinger) {
	rg.GET("/status", StatusHandler(db))
}
