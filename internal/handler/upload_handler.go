package handler

import (
	"io"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/upload"

	"github.com/rs/zerolog"
)

// UploadHandler handles image upload requests.
type UploadHandler struct {
	storage upload.Storage
	logger  zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(storage upload.Storage, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// UploadResponse carries the stored file's public location.
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// Create handles POST /api/upload requests. The image arrives as the "file"
// part of a multipart form and is stored under a random name.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid multipart form", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "file is required", h.logger)
		return
	}
	defer file.Close()

	if err := upload.Validate(header.Filename, header.Size); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, upload.MaxFileSize))
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to read uploaded file", h.logger)
		return
	}

	name, err := upload.RandomName(header.Filename)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	path, err := h.storage.Save(r.Context(), name, data)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Str("name", name).
		Int64("size", header.Size).
		Msg("file uploaded")

	writeJSON(w, http.StatusCreated, UploadResponse{URL: path, FileName: name})
}
