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
	"time"

	"classinfo/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Structs for the API response format

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

type APIResponse struct {
	Data     interface{} `json:"data"`
	Errors   []string    `json:"errors"`
	Metadata Metadata    `json:"metadata"`
}

// Response functions

func CreateAPIResponse(data interface{}, errors []string, requestID string) APIResponse {
	// If the requestID is blank and not cascading from other functions generate a new one
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return APIResponse{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now(),
			Version:   "v0",
			RequestID: requestID,
		},
	}
}

// Success writes data in the envelope, tagged with the request's id.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, CreateAPIResponse(data, []string{}, logger.GetRequestID(c)))
}

// Fail writes errors in the envelope, tagged with the request's id.
func Fail(c *gin.Context, status int, errors ...string) {
	c.JSON(status, CreateAPIResponse(nil, errors, logger.GetRequestID(c)))
}

// Abort is Fail for middleware.
func Abort(c *gin.Context, status int, errors ...string) {
	c.AbortWithStatusJSON(status, CreateAPIResponse(nil, errors, logger.GetRequestID(c)))
}
