package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/model"
	"storefront/internal/upload"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStorage records saved files for assertions.
type memoryStorage struct {
	saved map[string][]byte
	err   error
}

func (s *memoryStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return "/uploads/" + name, nil
}

func multipartBody(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(strings.Repeat("x", size)))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Success", func(t *testing.T) {
		storage := &memoryStorage{}
		h := NewUploadHandler(storage, logger)

		body, contentType := multipartBody(t, "photo.png", 4096)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp UploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// Stored under a random hex name, not the submitted one.
		assert.NotContains(t, resp.FileName, "photo")
		assert.True(t, strings.HasSuffix(resp.FileName, ".png"))
		assert.Equal(t, "/uploads/"+resp.FileName, resp.URL)

		require.Len(t, storage.saved, 1)
		assert.Len(t, storage.saved[resp.FileName], 4096)
	})

	t.Run("File too small", func(t *testing.T) {
		storage := &memoryStorage{}
		h := NewUploadHandler(storage, logger)

		body, contentType := multipartBody(t, "photo.png", 512)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeFileTooSmall, resp.Code)
		assert.Empty(t, storage.saved)
	})

	t.Run("Unsupported type", func(t *testing.T) {
		storage := &memoryStorage{}
		h := NewUploadHandler(storage, logger)

		body, contentType := multipartBody(t, "payload.svg", 4096)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeUnsupportedFile, resp.Code)
	})

	t.Run("Missing file part", func(t *testing.T) {
		storage := &memoryStorage{}
		h := NewUploadHandler(storage, logger)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		storage := &memoryStorage{err: assert.AnError}
		h := NewUploadHandler(storage, logger)

		body, contentType := multipartBody(t, "photo.png", upload.MinFileSize)
		req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.Create(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}
