package worker

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/queue"
	"clipgen/internal/repositories"
)

func TestRunConsumesQueuedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repositories.NewMemoryJobRepository()
	gen := &stubGenerator{}
	sp := newStubStorage()
	createJob(t, store)

	q := queue.NewChannelQueue(4)
	require.NoError(t, q.Enqueue(ctx, "job_test"))

	p := newTestProcessor(t, store, gen, sp)
	log := logger.New(logger.Config{Output: io.Discard})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Run(ctx, q, p, log)
	}()

	require.Eventually(t, func() bool {
		j, err := store.Get(context.Background(), "job_test")
		return err == nil && j.Status.Terminal()
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker loop did not stop after cancel")
	}

	j, err := store.Get(context.Background(), "job_test")
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusCompleted, j.Status)
}
