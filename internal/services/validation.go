package services

import (
	"errors"
	"fmt"

	"spendview/internal/core"
)

// DefaultMaxUploadBytes caps individual receipt files at 10 MB.
const DefaultMaxUploadBytes = 10 << 20

var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedTypes is the fixed set of MIME types the upload surface accepts.
var allowedTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"application/pdf": {},
	"text/plain":      {},
}

// ValidateFile checks one uploaded file's declared type and size. Rejections
// are per-file: a failing file never blocks the rest of its batch.
func ValidateFile(meta core.FileMeta, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if _, ok := allowedTypes[meta.ContentType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, meta.ContentType)
	}
	if meta.Size > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, meta.Size, maxBytes)
	}
	return nil
}
