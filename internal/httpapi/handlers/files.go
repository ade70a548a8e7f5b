package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"clipgen/internal/pkg/errors"
	"clipgen/internal/pkg/middleware"
)

// StreamArtifact streams a stored object (uploaded image or generated video)
// back to the caller. This is the read side of the localfs provider's base
// URL; it also works against s3 and gdrive backends.
func (h *Handler) StreamArtifact(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		middleware.HandleError(w, r, h.log, errors.Validation("object key is required"))
		return
	}

	rc, contentType, size, err := h.storage.GetObject(r.Context(), key)
	if err != nil {
		if errors.IsNotFound(err) {
			middleware.HandleError(w, r, h.log, err)
			return
		}
		middleware.HandleError(w, r, h.log, errors.Wrap(err, "http.files", "failed to read object"))
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.log.FromContext(r.Context()).Warn("artifact stream interrupted",
			"key", key, "error", err.Error())
	}
}
