package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"clipgen/internal/httpkit"
	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
	"clipgen/internal/pkg/ids"
	"clipgen/internal/pkg/middleware"
	"clipgen/internal/ports"
)

type generateResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GenerateVideos accepts a multipart image upload, stores the image, creates
// a queued job and dispatches it. The response returns immediately with the
// job id; generation progress is observed through the status endpoint.
func (h *Handler) GenerateVideos(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.HandleError(w, r, h.log, errors.Validation("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.HandleError(w, r, h.log, errors.Validation("image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		middleware.HandleError(w, r, h.log,
			errors.Validation("file must be an image").WithField("content_type", contentType))
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("video-generation/%s%s", ids.NewStamp(), ext)

	put, err := h.storage.PutObject(r.Context(), ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: contentType,
		Reader:      file,
		Size:        header.Size,
	})
	if err != nil {
		middleware.HandleError(w, r, h.log,
			errors.WrapWithCode(err, errors.CodeUpload, "http.generate", "failed to store uploaded image"))
		return
	}

	job := jobs.New(ids.NewJobID(), header.Filename, put.URL)
	if err := h.store.Create(r.Context(), job); err != nil {
		middleware.HandleError(w, r, h.log, errors.Wrap(err, "http.generate", "failed to create job"))
		return
	}

	if err := h.queue.Enqueue(r.Context(), job.ID); err != nil {
		// The job record exists but will never be picked up; move it to a
		// terminal state so pollers are not left watching a permanently
		// queued job. Terminal means completed_at is set, like any other
		// finished job.
		if _, uerr := h.store.Update(r.Context(), job.ID, func(j *jobs.Job) {
			j.Status = jobs.StatusFailed
			j.Progress = "Failed to dispatch job"
			j.CurrentVariant = ""
			now := time.Now().UTC()
			j.CompletedAt = &now
		}); uerr != nil {
			h.log.FromContext(r.Context()).Error("failed to mark undispatched job",
				"job_id", job.ID, "error", uerr.Error())
		}
		middleware.HandleError(w, r, h.log,
			errors.WrapWithCode(err, errors.CodeUnavailable, "http.generate", "failed to dispatch job"))
		return
	}

	h.log.FromContext(r.Context()).Info("job created",
		"job_id", job.ID,
		"image_url", put.URL,
		"filename", header.Filename,
	)

	httpkit.WriteJSON(w, http.StatusAccepted, generateResponse{
		JobID:   job.ID,
		Status:  string(jobs.StatusQueued),
		Message: fmt.Sprintf("Video generation started. Use /status/%s to check progress.", job.ID),
	})
}
