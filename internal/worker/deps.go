package worker

import (
	"time"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/ports"
	"clipgen/internal/provider"
)

type Deps struct {
	Store     jobs.Store
	Generator provider.Generator
	Storage   ports.StorageProvider

	// SpoolDir holds locally written videos before upload; on upload failure
	// the local copy is the fallback reference.
	SpoolDir string

	// Pacing is the delay before the 2nd and later variant attempts of a
	// job. It paces requests against the provider's rate limits for this
	// job's worker only; concurrent jobs are not coordinated.
	Pacing time.Duration

	// CallTimeout bounds a single generation call.
	CallTimeout time.Duration

	Config jobs.GenerationConfig
	Log    *logger.Logger
}
