// Package repositories provides jobs.Store implementations.
package repositories

import (
	"context"
	"sync"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
)

// MemoryJobRepository is the default in-memory store. Records are retained
// for the lifetime of the process; there is no expiry.
//
// Snapshot safety: the map only ever holds records that are no longer
// written to. Update clones the current record, applies the mutation to the
// clone, and swaps the pointer, so a concurrently returned snapshot can
// never expose a torn read.
type MemoryJobRepository struct {
	mu    sync.RWMutex
	byID  map[string]*jobs.Job
	order []string
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{byID: make(map[string]*jobs.Job)}
}

func (r *MemoryJobRepository) Create(ctx context.Context, job *jobs.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[job.ID]; ok {
		return errors.AlreadyExists("job", job.ID)
	}
	r.byID[job.ID] = job.Clone()
	r.order = append(r.order, job.ID)
	return nil
}

func (r *MemoryJobRepository) Get(ctx context.Context, id string) (*jobs.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("job", id)
	}
	return j.Clone(), nil
}

func (r *MemoryJobRepository) List(ctx context.Context) ([]*jobs.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*jobs.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, id string, mutate func(*jobs.Job)) (*jobs.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("job", id)
	}
	next := cur.Clone()
	mutate(next)
	r.byID[id] = next
	return next.Clone(), nil
}

var _ jobs.Store = (*MemoryJobRepository)(nil)
