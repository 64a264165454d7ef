package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/easytravel/easytravel-server/internal/logger"
	"github.com/easytravel/easytravel-server/internal/model"
)

// Image serves stored images back to clients.
type Image struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewImage creates a new Image handler.
func NewImage(storage model.Storage, logger *logger.Logger) *Image {
	return &Image{
		storage: storage,
		logger:  logger,
	}
}

// Serve streams an object under the given storage prefix. The key is taken
// from the "key" URL parameter and sanitized against path traversal.
func (h *Image) Serve(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := path.Base(chi.URLParam(r, "key"))
		if key == "." || key == "/" {
			writeError(w, http.StatusBadRequest, "invalid image key")
			return
		}
		objectKey := prefix + "/" + key

		// Download defers missing-object errors until the first read, so
		// existence has to be checked up front for the 404 to happen before
		// the response is committed.
		exists, err := h.storage.Exists(r.Context(), objectKey)
		if err != nil {
			h.logger.Error("Image handler: failed to check image existence",
				"key", key,
				"error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if !exists {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		reader, err := h.storage.Download(r.Context(), objectKey)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				writeError(w, http.StatusNotFound, "not found")
				return
			}
			h.logger.Error("Image handler: failed to download image",
				"key", key,
				"error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		defer reader.Close()

		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)

		if _, err := io.Copy(w, reader); err != nil {
			h.logger.Error("Image handler: failed to stream image",
				"key", key,
				"error", err.Error())
		}
	}
}
