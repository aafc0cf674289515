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
	"context"
	"crypto/subtle"
	"database/sql"
	"strings"

	"classinfo/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ErrEmptyPin is returned when setting a blank PIN.
var ErrEmptyPin = errors.New("pin must not be empty")

// Repository provides access to the settings table
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new settings repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting returns a setting by key, or nil if it was never written
func (r *Repository) GetSetting(ctx context.Context, key string) (*Setting, error) {
	var s Setting
	err := r.db.GetContext(ctx, &s, `SELECT id, key, value FROM settings WHERE key = ? LIMIT 1`, key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get setting %s", key)
	}
	return &s, nil
}

// PutSetting inserts or patches the row for key
func (r *Repository) PutSetting(ctx context.Context, key, value string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var id int64
		err := tx.GetContext(ctx, &id, `SELECT id FROM settings WHERE key = ? LIMIT 1`, key)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, value)
		case err == nil:
			_, err = tx.ExecContext(ctx, `UPDATE settings SET value = ? WHERE id = ?`, value, id)
		}
		return errors.Wrapf(err, "put setting %s", key)
	})
}

// GetPin returns the admin PIN, falling back to DefaultPin when unset or blank
func (r *Repository) GetPin(ctx context.Context) (string, error) {
	s, err := r.GetSetting(ctx, PinKey)
	if err != nil {
		return "", err
	}
	if s == nil || s.Value == "" {
		return DefaultPin, nil
	}
	return s.Value, nil
}

// SetPin replaces the admin PIN
func (r *Repository) SetPin(ctx context.Context, pin string) error {
	if strings.TrimSpace(pin) == "" {
		return ErrEmptyPin
	}
	return r.PutSetting(ctx, PinKey, pin)
}

// VerifyPin reports whether pin equals the stored PIN exactly
func (r *Repository) VerifyPin(ctx context.Context, pin string) (bool, error) {
	adminPin, err := r.GetPin(ctx)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(pin), []byte(adminPin)) == 1, nil
}
