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

import "time"

// File is an uploaded attachment. Notices reference files by id; a file does
// not know which notice uses it.
type File struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Type       string    `db:"type" json:"type"`
	Size       int64     `db:"size" json:"size"`
	URL        string    `db:"url" json:"url"`
	StorageID  string    `db:"storage_id" json:"storageId"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// CreateFileRequest registers an object that is already in storage
type CreateFileRequest struct {
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type"`
	Size      int64  `json:"size" binding:"min=0"`
	URL       string `json:"url" binding:"required,url"`
	StorageID string `json:"storageId" binding:"required"`
}

// UpdateFileRequest patches the metadata of a file
type UpdateFileRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	Size int64  `json:"size" binding:"min=0"`
}

// UpdateByStorageIDRequest patches the metadata of the file stored under StorageID
type UpdateByStorageIDRequest struct {
	StorageID string `json:"storageId" binding:"required"`
	UpdateFileRequest
}
