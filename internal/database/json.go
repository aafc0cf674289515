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

package database

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// StringList is a []string stored as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return MarshalJSON(l)
}

func (l *StringList) Scan(src interface{}) error {
	return ScanJSON(src, l)
}

// MarshalJSON encodes v for a TEXT column.
func MarshalJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode json column")
	}
	return string(b), nil
}

// ScanJSON decodes a JSON TEXT column into dest. NULL and empty leave dest untouched.
func ScanJSON(src interface{}, dest interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return errors.Errorf("json column: unsupported type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, dest), "decode json column")
}
