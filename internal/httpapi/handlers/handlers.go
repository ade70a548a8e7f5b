// Package handlers implements the HTTP endpoints of the clipgen API:
// image upload and job creation, job polling, and artifact streaming.
package handlers

import (
	"context"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/ports"
	"clipgen/internal/queue"
)

// maxUploadBytes caps the multipart form held in memory per upload.
const maxUploadBytes = 32 << 20

type Deps struct {
	Store   jobs.Store
	Queue   queue.Queue
	Storage ports.StorageProvider
	Log     *logger.Logger

	// Checks are named dependency probes run by the deep health check
	// (postgres, redis, whatever the deployment wires in).
	Checks map[string]func(context.Context) error
}

type Handler struct {
	store   jobs.Store
	queue   queue.Queue
	storage ports.StorageProvider
	checks  map[string]func(context.Context) error
	log     *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		store:   d.Store,
		queue:   d.Queue,
		storage: d.Storage,
		checks:  d.Checks,
		log:     log.WithComponent("http"),
	}
}
