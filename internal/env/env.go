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

package env

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Load reads a .env file from the working directory if one exists.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetInt reads an integer; malformed values are logged and replaced by the default.
func GetInt(key string, defaultValue int) int {
	return parse(key, defaultValue, strconv.Atoi)
}

func GetBool(key string, defaultValue bool) bool {
	return parse(key, defaultValue, strconv.ParseBool)
}

// GetDuration reads a Go duration such as 90s or 1h30m.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	return parse(key, defaultValue, time.ParseDuration)
}

func parse[T any](key string, defaultValue T, conv func(string) (T, error)) T {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	parsed, err := conv(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring malformed environment value")
		return defaultValue
	}
	return parsed
}

// Server
const (
	EnvPort         = "PORT"
	EnvDatabasePath = "DATABASE_PATH"
	EnvLogLevel     = "LOG_LEVEL"
)

// School data API
const (
	EnvSchoolAPIBaseURL = "SCHOOL_API_BASE_URL"
	EnvSchoolAPITimeout = "SCHOOL_API_TIMEOUT"
	EnvSchoolCode       = "SCHOOL_CODE"
	EnvTimetableGrade   = "TIMETABLE_GRADE"
	EnvTimetableClass   = "TIMETABLE_CLASS"

	// Background refresh
	EnvRefreshEnabled  = "REFRESH_ENABLED"
	EnvRefreshInterval = "REFRESH_INTERVAL"
)

// Admin sessions
const (
	EnvSessionDuration = "SESSION_DURATION"
	EnvSecureCookies   = "SECURE_COOKIES"
)

// Attachment storage (Backblaze B2)
const (
	EnvB2AccountID        = "B2_ACCOUNT_ID"
	EnvB2ApplicationKey   = "B2_APPLICATION_KEY"
	EnvB2Bucket           = "B2_BUCKET"
	EnvFilesPublicBaseURL = "FILES_PUBLIC_BASE_URL"
)

// Defaults shared by the binaries
const (
	DefaultPort             = "9237"
	DefaultDatabasePath     = "./internal/databases/classinfo.db"
	DefaultSchoolAPIBaseURL = "https://api.timefor.school"
	DefaultSchoolCode       = "7081492"
	DefaultTimetableGrade   = 3
	DefaultTimetableClass   = 4
	DefaultFilesBaseURL     = "https://files.timefor.school"
)
