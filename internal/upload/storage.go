// Package upload stores customer-facing images. Files are validated for type
// and size, renamed to random hex names and written to local disk or S3.
package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"storefront/internal/model"
)

const (
	// MinFileSize rejects files too small to be a real image.
	MinFileSize = 2 * 1024
	// MaxFileSize caps uploads at 10 MiB.
	MaxFileSize = 10 * 1024 * 1024
)

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// Storage persists an uploaded file and returns the path clients use to
// reach it.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Validate checks the original filename and size against the upload policy.
func Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return model.ErrUnsupportedFile
	}
	if size < MinFileSize {
		return model.ErrFileTooSmall
	}
	if size > MaxFileSize {
		return model.NewDomainError(model.ErrCodeUnsupportedFile, "Uploaded file is too large")
	}
	return nil
}

// ContentType returns the MIME type for an already validated filename.
func ContentType(filename string) string {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// RandomName generates a random hex filename preserving the original
// extension, so uploaded names never reach the filesystem or bucket.
func RandomName(filename string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	return hex.EncodeToString(buf) + strings.ToLower(filepath.Ext(filename)), nil
}
