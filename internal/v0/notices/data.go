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
	"context"
	"database/sql"
	"time"

	"classinfo/internal/database"
	"classinfo/internal/kst"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by mutations on a missing notice
var ErrNotFound = errors.New("Notice not found")

const noticeColumns = `id, title, subject, type, description, due_date, slug, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new notice repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List returns every notice by due date, oldest first
func (r *Repository) List(ctx context.Context) ([]Notice, error) {
	return r.selectNotices(ctx, r.db, `SELECT `+noticeColumns+` FROM notices ORDER BY due_date, id`)
}

// ListDueFrom returns notices due on or after from (YYYY-MM-DD)
func (r *Repository) ListDueFrom(ctx context.Context, from string) ([]Notice, error) {
	return r.selectNotices(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE due_date >= ? ORDER BY due_date, id`, from)
}

// ListDueBefore returns notices due strictly before the given date
func (r *Repository) ListDueBefore(ctx context.Context, before string) ([]Notice, error) {
	return r.selectNotices(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE due_date < ? ORDER BY due_date, id`, before)
}

// ListDueBetween returns notices due in [from, to)
func (r *Repository) ListDueBetween(ctx context.Context, from, to string) ([]Notice, error) {
	return r.selectNotices(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE due_date >= ? AND due_date < ? ORDER BY due_date, id`, from, to)
}

// GetByID returns a notice, or nil if there is none
func (r *Repository) GetByID(ctx context.Context, id int64) (*Notice, error) {
	return r.getNotice(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id)
}

// GetBySlug returns the notice with slug, or nil if there is none
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Notice, error) {
	return r.getNotice(ctx, r.db, `SELECT `+noticeColumns+` FROM notices WHERE slug = ?`, slug)
}

// Create inserts a notice, assigning its slug in the same transaction
func (r *Repository) Create(ctx context.Context, req CreateNoticeRequest, now time.Time) (*Notice, error) {
	dueDate, err := kst.NormalizeDate(req.DueDate)
	if err != nil {
		return nil, errors.Wrap(err, "due date")
	}

	var created *Notice
	err = database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		requested := ""
		if req.Slug != nil {
			requested = *req.Slug
		}
		slug, err := assignSlug(requested, slugTaken(ctx, tx, 0))
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO notices (title, subject, type, description, due_date, slug, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			req.Title, req.Subject, string(req.Type), req.Description, dueDate, slug, now.UTC(), now.UTC(),
		)
		if err != nil {
			return errors.Wrap(err, "insert notice")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "insert notice")
		}
		if err := replaceFiles(ctx, tx, id, req.FileIDs); err != nil {
			return err
		}

		created, err = r.getNotice(ctx, tx, `SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces a notice's fields. The slug is re-checked for uniqueness
// when one is supplied.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateNoticeRequest, now time.Time) (*Notice, error) {
	dueDate, err := kst.NormalizeDate(req.DueDate)
	if err != nil {
		return nil, errors.Wrap(err, "due date")
	}

	var updated *Notice
	err = database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		current, err := r.getNotice(ctx, tx, `SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}

		slug := current.Slug
		if req.Slug != nil {
			assigned, err := assignSlug(*req.Slug, slugTaken(ctx, tx, id))
			if err != nil {
				return err
			}
			slug = &assigned
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE notices
			SET title = ?, subject = ?, type = ?, description = ?, due_date = ?, slug = ?, updated_at = ?
			WHERE id = ?`,
			req.Title, req.Subject, string(req.Type), req.Description, dueDate, slug, now.UTC(), id,
		)
		if err != nil {
			return errors.Wrapf(err, "update notice %d", id)
		}
		if req.FileIDs != nil {
			if err := replaceFiles(ctx, tx, id, *req.FileIDs); err != nil {
				return err
			}
		}

		updated, err = r.getNotice(ctx, tx, `SELECT `+noticeColumns+` FROM notices WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes a notice. Its file rows are left in place.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id)
		if err != nil {
			return errors.Wrapf(err, "delete notice %d", id)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "rows affected")
		}
		if n == 0 {
			return ErrNotFound
		}
		// cascade covers this when foreign keys are enforced
		_, err = tx.ExecContext(ctx, `DELETE FROM notice_files WHERE notice_id = ?`, id)
		return errors.Wrap(err, "delete notice files")
	})
}

func slugTaken(ctx context.Context, tx *sqlx.Tx, excludeID int64) func(string) (bool, error) {
	return func(slug string) (bool, error) {
		var n int
		err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM notices WHERE slug = ? AND id != ?`, slug, excludeID)
		if err != nil {
			return false, errors.Wrap(err, "check slug")
		}
		return n > 0, nil
	}
}

func replaceFiles(ctx context.Context, tx *sqlx.Tx, noticeID int64, fileIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM notice_files WHERE notice_id = ?`, noticeID); err != nil {
		return errors.Wrap(err, "clear notice files")
	}
	if len(fileIDs) == 0 {
		return nil
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO notice_files (notice_id, file_id, position) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare notice files")
	}
	defer stmt.Close()

	for pos, fileID := range fileIDs {
		if _, err := stmt.ExecContext(ctx, noticeID, fileID, pos); err != nil {
			return errors.Wrap(err, "insert notice file")
		}
	}
	return nil
}

func (r *Repository) getNotice(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (*Notice, error) {
	var n Notice
	err := sqlx.GetContext(ctx, q, &n, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get notice")
	}
	list := []Notice{n}
	if err := loadFileIDs(ctx, q, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *Repository) selectNotices(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) ([]Notice, error) {
	result := []Notice{}
	if err := sqlx.SelectContext(ctx, q, &result, query, args...); err != nil {
		return nil, errors.Wrap(err, "list notices")
	}
	if err := loadFileIDs(ctx, q, result); err != nil {
		return nil, err
	}
	return result, nil
}

// loadFileIDs fills FileIDs in attachment order for every notice in list.
func loadFileIDs(ctx context.Context, q sqlx.QueryerContext, list []Notice) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, len(list))
	byID := make(map[int64]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		byID[list[i].ID] = i
		list[i].FileIDs = []int64{}
	}

	query, args, err := sqlx.In(`SELECT notice_id, file_id FROM notice_files WHERE notice_id IN (?) ORDER BY notice_id, position`, ids)
	if err != nil {
		return errors.Wrap(err, "build file query")
	}

	var rows []struct {
		NoticeID int64 `db:"notice_id"`
		FileID   int64 `db:"file_id"`
	}
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return errors.Wrap(err, "load notice files")
	}
	for _, row := range rows {
		i := byID[row.NoticeID]
		list[i].FileIDs = append(list[i].FileIDs, row.FileID)
	}
	return nil
}
