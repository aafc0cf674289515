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
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"classinfo/internal/common"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize bounds a single attachment.
const MaxUploadSize = 32 << 20

// ObjectStore is where attachment bytes live.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Handler initialization that holds the Repository database connection and
// the optional object store
type Handler struct {
	repo  *Repository
	store ObjectStore
	now   func() time.Time
}

// NewHandler creates a file handler; store may be nil when uploads are not configured
func NewHandler(repo *Repository, store ObjectStore) *Handler {
	return &Handler{repo: repo, store: store, now: time.Now}
}

// GetFile returns one file record, or null
// GET /api/v0/files/:id
func (h *Handler) GetFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		common.Success(c, http.StatusOK, nil)
		return
	}
	f, err := h.repo.GetFile(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("file_id", id).Msg("get file failed")
		common.Fail(c, http.StatusInternalServerError, "failed to load file")
		return
	}
	common.Success(c, http.StatusOK, f)
}

// Upload proxies a multipart upload to object storage and records it
// POST /api/v0/admin/files
func (h *Handler) Upload(c *gin.Context) {
	if h.store == nil {
		common.Fail(c, http.StatusServiceUnavailable, "file storage is not configured")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	header, err := c.FormFile("file")
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "missing file")
		return
	}
	src, err := header.Open()
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "unreadable file")
		return
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if mt, err := mimetype.DetectReader(src); err == nil {
			contentType = mt.String()
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			common.Fail(c, http.StatusInternalServerError, "failed to read file")
			return
		}
	}

	name := path.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	key := "notices/" + uuid.NewString() + "/" + name

	ctx := c.Request.Context()
	url, err := h.store.Upload(ctx, key, contentType, src)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("upload failed")
		common.Fail(c, http.StatusBadGateway, "failed to store file")
		return
	}

	f, err := h.repo.CreateFileRecord(ctx, CreateFileRequest{
		Name:      name,
		Type:      contentType,
		Size:      header.Size,
		URL:       url,
		StorageID: key,
	}, h.now())
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to record upload")
		common.Fail(c, http.StatusInternalServerError, "failed to record file")
		return
	}
	common.Success(c, http.StatusCreated, f)
}

// CreateFileRecord registers an object uploaded out of band
// POST /api/v0/admin/files/records
func (h *Handler) CreateFileRecord(c *gin.Context) {
	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	f, err := h.repo.CreateFileRecord(c.Request.Context(), req, h.now())
	if err != nil {
		log.Error().Err(err).Msg("create file record failed")
		common.Fail(c, http.StatusInternalServerError, "failed to record file")
		return
	}
	common.Success(c, http.StatusCreated, f)
}

// UpdateFileMetadata patches a file by id
// PATCH /api/v0/admin/files/:id
func (h *Handler) UpdateFileMetadata(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	var req UpdateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	if err := h.repo.UpdateFileMetadata(c.Request.Context(), id, req); err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, gin.H{"id": id})
}

// UpdateFileMetadataByStorageID patches a file found by its storage key
// POST /api/v0/admin/files/metadata
func (h *Handler) UpdateFileMetadataByStorageID(c *gin.Context) {
	var req UpdateByStorageIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.BindingErrors(err)...)
		return
	}
	id, err := h.repo.UpdateFileMetadataByStorageID(c.Request.Context(), req.StorageID, req.UpdateFileRequest)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, gin.H{"id": id})
}

// DeleteFile removes the record; the stored object is removed best effort
// DELETE /api/v0/admin/files/:id
func (h *Handler) DeleteFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	ctx := c.Request.Context()
	f, err := h.repo.DeleteFile(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.store != nil {
		if err := h.store.Delete(ctx, f.StorageID); err != nil {
			log.Warn().Err(err).Str("key", f.StorageID).Msg("stored object left behind")
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Cause(err) == ErrNotFound {
		common.Fail(c, http.StatusNotFound, ErrNotFound.Error())
		return
	}
	log.Error().Err(err).Msg("file operation failed")
	common.Fail(c, http.StatusInternalServerError, "file operation failed")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
