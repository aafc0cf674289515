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
	"classinfo/internal/kst"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RegisterValidators adds the yyyymmdd tag to v.
func RegisterValidators(v *validator.Validate) error {
	if v == nil {
		return errors.New("no validator engine")
	}
	return errors.Wrap(v.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
		_, err := kst.ParseYMD(fl.Field().String())
		return err == nil
	}), "register yyyymmdd")
}
