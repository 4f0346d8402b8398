// Package storage keeps the binary payloads referenced by the database:
// uploaded documents and gallery images. Rows store only a storage key; the
// bytes live either on the local filesystem (LocalStore) or in an
// S3-compatible bucket (S3Store).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotExist is returned when the object behind a key is missing.
var ErrNotExist = errors.New("storage: object does not exist")

// ErrInvalidKey is returned for keys that are empty, absolute or escape the root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Object is an opened stored file. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Store is the contract shared by every backend.
type Store interface {
	// Open returns the object for key, or ErrNotExist.
	Open(ctx context.Context, key string) (*Object, error)
	// Save writes r under key and returns the number of bytes stored.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (int64, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// CleanKey normalizes a storage key to a slash-separated relative path and
// rejects anything that would leave the store root.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	clean := path.Clean(key)
	if clean == "." {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// NewKey builds a unique key for an upload: dir/YYYY/MM/<name>_<uuid8><ext>.
// The original file name only contributes a sanitized stem and its extension.
func NewKey(dir, originalName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(originalName))
	stem := sanitize(strings.TrimSuffix(path.Base(strings.ReplaceAll(originalName, "\\", "/")), path.Ext(originalName)))
	if len([]rune(stem)) > 50 {
		stem = string([]rune(stem)[:50])
	}
	uid := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%s/%s_%s%s", strings.Trim(dir, "/"), now.UTC().Format("2006/01"), stem, uid, ext)
}

// sanitize keeps letters (Latin and Cyrillic), digits, '-' and '_'.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' ||
			(r >= 0x0400 && r <= 0x04FF) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
