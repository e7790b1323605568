package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// diskStorage implements Storage on the local filesystem.
type diskStorage struct {
	dir    string
	logger zerolog.Logger
}

// NewDiskStorage creates a filesystem-backed storage rooted at dir.
func NewDiskStorage(dir string, logger zerolog.Logger) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &diskStorage{
		dir:    dir,
		logger: logger.With().Str("component", "disk-storage").Logger(),
	}, nil
}

// Save writes the file under the storage directory and returns its public
// path.
func (s *diskStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write uploaded file")
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	s.logger.Info().
		Str("name", name).
		Int("size", len(data)).
		Msg("file stored on disk")

	return "/uploads/" + name, nil
}
