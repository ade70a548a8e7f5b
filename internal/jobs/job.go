// Package jobs defines the video generation job model, its status state
// machine, the fixed emotion variants, and the Store contract.
package jobs

import "time"

// Status is the lifecycle state of a job. Transitions only move forward:
// queued -> processing -> (completed | failed).
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions occur from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// GenerationConfig holds the tunable options passed to the generation
// provider. One fixed configuration is applied to every job today, but the
// worker takes it as a parameter so a caller-supplied override does not
// change the algorithm.
type GenerationConfig struct {
	Resolution      string `json:"resolution"`
	AspectRatio     string `json:"aspect_ratio"`
	NumFrames       int    `json:"num_frames"`
	FramesPerSecond int    `json:"frames_per_second"`
}

// DefaultGenerationConfig returns the service defaults: 480p square video,
// 81 frames at 16 FPS.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Resolution:      "480p",
		AspectRatio:     "1:1",
		NumFrames:       81,
		FramesPerSecond: 16,
	}
}

// VariantResult records one successfully generated and stored video.
// Entries are never mutated after insertion.
type VariantResult struct {
	VideoURL         string         `json:"video_url"`
	LocalPath        string         `json:"local_path,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	GenerationTime   string         `json:"generation_time,omitempty"`
	CreditsRemaining string         `json:"credits_remaining,omitempty"`
}

// Job is one end-to-end request to turn an uploaded image into up to three
// variant videos. A job record has exactly one writer for its lifetime: the
// worker processing it. Readers always receive snapshots.
type Job struct {
	ID             string                    `json:"job_id"`
	Status         Status                    `json:"status"`
	ImageFilename  string                    `json:"image_filename,omitempty"`
	ImageURL       string                    `json:"image_url"`
	CurrentVariant Variant                   `json:"current_variant,omitempty"`
	Progress       string                    `json:"progress"`
	Results        map[Variant]VariantResult `json:"videos"`
	Errors         map[Variant]string        `json:"errors"`
	CreatedAt      time.Time                 `json:"created_at"`
	CompletedAt    *time.Time                `json:"completed_at,omitempty"`
}

// New creates a queued job record.
func New(id, imageFilename, imageURL string) *Job {
	return &Job{
		ID:            id,
		Status:        StatusQueued,
		ImageFilename: imageFilename,
		ImageURL:      imageURL,
		Progress:      "Job queued",
		Results:       map[Variant]VariantResult{},
		Errors:        map[Variant]string{},
		CreatedAt:     time.Now().UTC(),
	}
}

// Clone returns a copy safe to hand to readers while the original keeps
// being mutated by the job's worker. Result entries are immutable after
// insertion, so a per-entry shallow copy is sufficient.
func (j *Job) Clone() *Job {
	c := *j
	if j.Results != nil {
		c.Results = make(map[Variant]VariantResult, len(j.Results))
		for k, v := range j.Results {
			c.Results[k] = v
		}
	}
	if j.Errors != nil {
		c.Errors = make(map[Variant]string, len(j.Errors))
		for k, v := range j.Errors {
			c.Errors[k] = v
		}
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
