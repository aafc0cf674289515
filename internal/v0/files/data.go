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

package files

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by mutations on a missing file
var ErrNotFound = errors.New("File not found")

const fileColumns = `id, name, type, size, url, storage_id, uploaded_at`

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new file repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// CreateFileRecord stores the metadata of an uploaded object
func (r *Repository) CreateFileRecord(ctx context.Context, req CreateFileRequest, now time.Time) (*File, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO files (name, type, size, url, storage_id, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Type, req.Size, req.URL, req.StorageID, now.UTC(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert file")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "insert file")
	}
	return r.GetFile(ctx, id)
}

// GetFile returns a file by id, or nil if it does not exist
func (r *Repository) GetFile(ctx context.Context, id int64) (*File, error) {
	var f File
	err := r.db.GetContext(ctx, &f, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get file %d", id)
	}
	return &f, nil
}

// UpdateFileMetadata patches name, type and size
func (r *Repository) UpdateFileMetadata(ctx context.Context, id int64, req UpdateFileRequest) error {
	res, err := r.db.ExecContext(ctx, `UPDATE files SET name = ?, type = ?, size = ? WHERE id = ?`,
		req.Name, req.Type, req.Size, id)
	if err != nil {
		return errors.Wrapf(err, "update file %d", id)
	}
	return requireAffected(res)
}

// UpdateFileMetadataByStorageID patches the first file stored under storageID
// and returns its id
func (r *Repository) UpdateFileMetadataByStorageID(ctx context.Context, storageID string, req UpdateFileRequest) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT id FROM files WHERE storage_id = ? ORDER BY id LIMIT 1`, storageID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, errors.Wrapf(err, "find file %s", storageID)
	}
	return id, r.UpdateFileMetadata(ctx, id, req)
}

// DeleteFile removes the row and returns what was deleted so the caller can
// clean up storage
func (r *Repository) DeleteFile(ctx context.Context, id int64) (*File, error) {
	f, err := r.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "delete file %d", id)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return f, nil
}

// GetNoticeFiles returns a notice's files in attachment order. Unknown
// notices and dangling references yield no entries.
func (r *Repository) GetNoticeFiles(ctx context.Context, noticeID int64) ([]File, error) {
	result := []File{}
	err := r.db.SelectContext(ctx, &result, `
		SELECT f.id, f.name, f.type, f.size, f.url, f.storage_id, f.uploaded_at
		FROM notice_files nf
		JOIN files f ON f.id = nf.file_id
		WHERE nf.notice_id = ?
		ORDER BY nf.position`, noticeID)
	if err != nil {
		return nil, errors.Wrapf(err, "get files of notice %d", noticeID)
	}
	return result, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
