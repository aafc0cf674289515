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

// Package storage keeps notice attachments in a Backblaze B2 bucket.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"
)

// B2Storage writes objects to one bucket and serves them from a public base URL
// (usually a CDN domain in front of the bucket).
type B2Storage struct {
	Client        *b2.Client
	Bucket        *b2.Bucket
	publicBaseURL string
}

func Init(ctx context.Context, accountID, appKey, bucketName, publicBaseURL string) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create b2 client")
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bucket")
	}

	return &B2Storage{
		Client:        client,
		Bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload stores r under key and returns the object's public URL.
func (s *B2Storage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	w := s.Bucket.Object(key).NewWriter(ctx)
	if contentType != "" {
		w = w.WithAttrs(&b2.Attrs{ContentType: contentType})
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", errors.Wrap(err, "failed to write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close writer")
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object stored under key.
func (s *B2Storage) Delete(ctx context.Context, key string) error {
	return errors.Wrap(s.Bucket.Object(key).Delete(ctx), "failed to delete object")
}
