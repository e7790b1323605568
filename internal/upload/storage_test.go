package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{
			name:     "Valid png",
			filename: "photo.png",
			size:     4096,
		},
		{
			name:     "Valid jpeg with uppercase extension",
			filename: "photo.JPG",
			size:     4096,
		},
		{
			name:     "Valid gif",
			filename: "anim.gif",
			size:     MinFileSize,
		},
		{
			name:     "Unsupported extension",
			filename: "script.svg",
			size:     4096,
			wantErr:  model.ErrUnsupportedFile,
		},
		{
			name:     "No extension",
			filename: "photo",
			size:     4096,
			wantErr:  model.ErrUnsupportedFile,
		},
		{
			name:     "Too small",
			filename: "photo.png",
			size:     MinFileSize - 1,
			wantErr:  model.ErrFileTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.filename, tt.size)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("Too large", func(t *testing.T) {
		err := Validate("photo.png", MaxFileSize+1)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeUnsupportedFile, domainErr.Code)
	})
}

func TestRandomName(t *testing.T) {
	name, err := RandomName("My Photo.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 32+len(".png"))
	assert.NotContains(t, name, " ")

	other, err := RandomName("My Photo.PNG")
	require.NoError(t, err)
	assert.NotEqual(t, name, other)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("a.png"))
	assert.Equal(t, "image/jpeg", ContentType("a.JPEG"))
	assert.Equal(t, "image/gif", ContentType("a.gif"))
}

func TestDiskStorage_Save(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewDiskStorage(filepath.Join(dir, "uploads"), zerolog.Nop())
	require.NoError(t, err)

	data := []byte(strings.Repeat("x", 4096))
	path, err := storage.Save(context.Background(), "abc123.png", data)

	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc123.png", path)

	written, err := os.ReadFile(filepath.Join(dir, "uploads", "abc123.png"))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestFallbackStorage_DiskOnly(t *testing.T) {
	dir := t.TempDir()

	disk, err := NewDiskStorage(dir, zerolog.Nop())
	require.NoError(t, err)

	storage := NewFallbackStorage(nil, disk, false, zerolog.Nop())

	path, err := storage.Save(context.Background(), "abc123.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc123.png", path)
}
