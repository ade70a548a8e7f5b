// Package provider holds the image-to-video generation client. The Generator
// interface lets tests substitute the external call with a double.
package provider

import (
	"context"

	"clipgen/internal/jobs"
)

type GenerateRequest struct {
	ImageURL string
	Prompt   string
	Config   jobs.GenerationConfig
}

// GenerateResult is a successfully generated video plus the metadata the
// provider reports through response headers.
type GenerateResult struct {
	Video            []byte
	Metadata         map[string]any
	GenerationTime   string
	CreditsRemaining string
}

type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}
