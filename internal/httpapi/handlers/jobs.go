package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clipgen/internal/httpkit"
	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
	"clipgen/internal/pkg/middleware"
)

// videoView is the per-variant slice of a result exposed to pollers. Local
// spool paths and raw provider metadata stay server-side.
type videoView struct {
	VideoURL         string `json:"video_url"`
	GenerationTime   string `json:"generation_time,omitempty"`
	CreditsRemaining string `json:"credits_remaining,omitempty"`
}

type statusResponse struct {
	JobID          string                     `json:"job_id"`
	Status         jobs.Status                `json:"status"`
	Progress       string                     `json:"progress"`
	CurrentVariant jobs.Variant               `json:"current_variant,omitempty"`
	ImageURL       string                     `json:"image_url"`
	Videos         map[jobs.Variant]videoView `json:"videos"`
	Errors         map[jobs.Variant]string    `json:"errors"`
	CreatedAt      time.Time                  `json:"created_at"`
	CompletedAt    *time.Time                 `json:"completed_at,omitempty"`
}

// JobStatus returns the current snapshot of one job.
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.store.Get(r.Context(), jobID)
	if err != nil {
		if errors.IsNotFound(err) {
			middleware.HandleError(w, r, h.log, err)
			return
		}
		middleware.HandleError(w, r, h.log, errors.Wrap(err, "http.status", "failed to load job"))
		return
	}

	videos := make(map[jobs.Variant]videoView, len(job.Results))
	for v, res := range job.Results {
		videos[v] = videoView{
			VideoURL:         res.VideoURL,
			GenerationTime:   res.GenerationTime,
			CreditsRemaining: res.CreditsRemaining,
		}
	}

	httpkit.WriteJSON(w, http.StatusOK, statusResponse{
		JobID:          job.ID,
		Status:         job.Status,
		Progress:       job.Progress,
		CurrentVariant: job.CurrentVariant,
		ImageURL:       job.ImageURL,
		Videos:         videos,
		Errors:         job.Errors,
		CreatedAt:      job.CreatedAt,
		CompletedAt:    job.CompletedAt,
	})
}

type jobSummary struct {
	JobID     string      `json:"job_id"`
	Status    jobs.Status `json:"status"`
	Progress  string      `json:"progress"`
	ImageURL  string      `json:"image_url"`
	CreatedAt time.Time   `json:"created_at"`
}

type listJobsResponse struct {
	TotalJobs int          `json:"total_jobs"`
	Jobs      []jobSummary `json:"jobs"`
}

// ListJobs returns summaries of all known jobs in insertion order.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		middleware.HandleError(w, r, h.log, errors.Wrap(err, "http.list", "failed to list jobs"))
		return
	}

	summaries := make([]jobSummary, 0, len(all))
	for _, j := range all {
		summaries = append(summaries, jobSummary{
			JobID:     j.ID,
			Status:    j.Status,
			Progress:  j.Progress,
			ImageURL:  j.ImageURL,
			CreatedAt: j.CreatedAt,
		})
	}

	httpkit.WriteJSON(w, http.StatusOK, listJobsResponse{
		TotalJobs: len(summaries),
		Jobs:      summaries,
	})
}
