// Package worker runs the sequential fan-out for video generation jobs: one
// ordered pass over the fixed variants with inter-call pacing, recording
// every outcome on the job record.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
	"clipgen/internal/pkg/ids"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/ports"
	"clipgen/internal/provider"
)

// recordedErrLen bounds error messages stored on the job record.
const recordedErrLen = 500

type Processor struct {
	store     jobs.Store
	generator provider.Generator
	storage   ports.StorageProvider
	spoolDir  string
	pacing    time.Duration
	timeout   time.Duration
	genConfig jobs.GenerationConfig
	log       *logger.Logger
}

func New(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	if d.Pacing <= 0 {
		d.Pacing = 2 * time.Second
	}
	if d.CallTimeout <= 0 {
		d.CallTimeout = 120 * time.Second
	}
	if d.SpoolDir == "" {
		d.SpoolDir = "videos"
	}
	if d.Config == (jobs.GenerationConfig{}) {
		d.Config = jobs.DefaultGenerationConfig()
	}

	return &Processor{
		store:     d.Store,
		generator: d.Generator,
		storage:   d.Storage,
		spoolDir:  d.SpoolDir,
		pacing:    d.Pacing,
		timeout:   d.CallTimeout,
		genConfig: d.Config,
		log:       log.WithComponent("processor"),
	}
}

// ProcessJob runs the full variant fan-out for one job. It only returns an
// error for infrastructure failures (store unreachable, unknown id); variant
// failures are recorded on the job, and a job with zero successes finishes
// in the failed status rather than erroring.
func (p *Processor) ProcessJob(ctx context.Context, jobID string) error {
	log := p.log.FromContext(ctx).WithJobID(jobID)

	job, err := p.store.Get(ctx, jobID)
	if err != nil {
		return errors.Wrap(err, "worker.fetch", "failed to load job")
	}

	if _, err := p.store.Update(ctx, jobID, func(j *jobs.Job) {
		j.Status = jobs.StatusProcessing
		j.Results = map[jobs.Variant]jobs.VariantResult{}
		j.Errors = map[jobs.Variant]string{}
	}); err != nil {
		return errors.Wrap(err, "worker.status", "failed to mark job processing")
	}

	variants := jobs.Variants()
	for i, v := range variants {
		// Pace requests between attempts; the first one goes out immediately.
		if i > 0 {
			time.Sleep(p.pacing)
		}

		if _, err := p.store.Update(ctx, jobID, func(j *jobs.Job) {
			j.CurrentVariant = v
			j.Progress = fmt.Sprintf("Processing %s (%d/%d)", v, i+1, len(variants))
		}); err != nil {
			return errors.Wrap(err, "worker.progress", "failed to update progress")
		}

		log.Info("generating variant", "variant", string(v), "position", i+1)

		result, genErr := p.generateVariant(ctx, job, v)
		if genErr != nil {
			log.Warn("variant failed", "variant", string(v), "error", genErr.Error())
			if _, err := p.store.Update(ctx, jobID, func(j *jobs.Job) {
				j.Errors[v] = truncate(genErr.Error(), recordedErrLen)
			}); err != nil {
				return errors.Wrap(err, "worker.record", "failed to record variant error")
			}
			continue
		}

		log.Info("variant completed", "variant", string(v), "video_url", result.VideoURL)
		if _, err := p.store.Update(ctx, jobID, func(j *jobs.Job) {
			j.Results[v] = *result
		}); err != nil {
			return errors.Wrap(err, "worker.record", "failed to record variant result")
		}
	}

	if _, err := p.store.Update(ctx, jobID, func(j *jobs.Job) {
		j.CurrentVariant = ""
		if len(j.Results) > 0 {
			j.Status = jobs.StatusCompleted
			j.Progress = fmt.Sprintf("Generated %d/%d videos", len(j.Results), len(variants))
		} else {
			j.Status = jobs.StatusFailed
			j.Progress = "All video generations failed"
		}
		now := time.Now().UTC()
		j.CompletedAt = &now
	}); err != nil {
		return errors.Wrap(err, "worker.finalize", "failed to finalize job")
	}

	return nil
}

// generateVariant runs one provider call and persists the video. A video
// that generated but failed to upload keeps its local spool path as a
// fallback reference yet still counts as a failure: callers need a stable
// externally-addressable URL.
func (p *Processor) generateVariant(ctx context.Context, job *jobs.Job, v jobs.Variant) (*jobs.VariantResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.generator.Generate(callCtx, provider.GenerateRequest{
		ImageURL: job.ImageURL,
		Prompt:   jobs.PromptFor(v),
		Config:   p.genConfig,
	})
	if err != nil {
		return nil, err
	}

	stamp := ids.NewStamp()

	localPath := filepath.Join(p.spoolDir, fmt.Sprintf("%s_%s.mp4", v, stamp))
	if err := os.MkdirAll(p.spoolDir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUpload, "worker.spool", "failed to prepare spool dir")
	}
	if err := os.WriteFile(localPath, out.Video, 0o644); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUpload, "worker.spool", "failed to write local video")
	}

	key := fmt.Sprintf("generated-videos/%s/%s_%s.mp4", job.ID, v, stamp)
	put, err := p.storage.PutObject(ctx, ports.PutObjectInput{
		ObjectKey:   key,
		ContentType: "video/mp4",
		Reader:      bytes.NewReader(out.Video),
		Size:        int64(len(out.Video)),
	})
	if err != nil {
		p.log.Warn("video upload failed, local copy retained",
			"variant", string(v),
			"local_path", localPath,
			"error", err.Error(),
		)
		return nil, errors.WrapWithCode(err, errors.CodeUpload, "worker.upload",
			fmt.Sprintf("failed to upload %s video to storage", v))
	}

	return &jobs.VariantResult{
		VideoURL:         put.URL,
		LocalPath:        localPath,
		Metadata:         out.Metadata,
		GenerationTime:   out.GenerationTime,
		CreditsRemaining: out.CreditsRemaining,
	}, nil
}

// truncate bounds s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
