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

package auth

import (
	"time"
)

const (
	// PinKey is the settings row holding the shared admin PIN.
	PinKey = "admin_pin"

	// DefaultPin applies until a PIN has been set.
	DefaultPin = "1234"

	// InvalidPinMessage is shown for every failed login.
	InvalidPinMessage = "잘못된 PIN입니다"
)

// Setting is a generic key/value row
type Setting struct {
	ID    int64  `db:"id" json:"id"`
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Session represents a server-side admin session
type Session struct {
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"-" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SessionWithRaw includes the raw token value (only returned on creation)
type SessionWithRaw struct {
	Session
	RawToken string `json:"-"`
}

// PinRequest is the body of the PIN check and login endpoints.
// Pin is a pointer so a missing field can be told apart from a wrong one.
type PinRequest struct {
	Pin *string `json:"pin"`
}

// SetPinRequest represents the request body for changing the PIN
type SetPinRequest struct {
	Pin string `json:"pin" binding:"required"`
}
