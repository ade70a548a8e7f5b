package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
)

func TestMemoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	j := jobs.New("job_a", "a.png", "http://files/a.png")
	require.NoError(t, repo.Create(ctx, j))

	got, err := repo.Get(ctx, "job_a")
	require.NoError(t, err)
	assert.Equal(t, "job_a", got.ID)
	assert.Equal(t, jobs.StatusQueued, got.Status)
}

func TestMemoryCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	require.NoError(t, repo.Create(ctx, jobs.New("job_a", "a.png", "u")))
	err := repo.Create(ctx, jobs.New("job_a", "b.png", "u"))
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestMemoryGetUnknown(t *testing.T) {
	repo := NewMemoryJobRepository()
	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()

	for _, id := range []string{"job_1", "job_2", "job_3"} {
		require.NoError(t, repo.Create(ctx, jobs.New(id, "f.png", "u")))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "job_1", all[0].ID)
	assert.Equal(t, "job_2", all[1].ID)
	assert.Equal(t, "job_3", all[2].ID)
}

func TestMemoryUpdatePublishesSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(ctx, jobs.New("job_a", "a.png", "u")))

	before, err := repo.Get(ctx, "job_a")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, "job_a", func(j *jobs.Job) {
		j.Status = jobs.StatusProcessing
		j.Progress = "Processing happy (1/3)"
	})
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusProcessing, updated.Status)

	// The snapshot taken before the update must not change under the reader.
	assert.Equal(t, jobs.StatusQueued, before.Status)

	after, err := repo.Get(ctx, "job_a")
	require.NoError(t, err)
	assert.Equal(t, jobs.StatusProcessing, after.Status)
	assert.Equal(t, "Processing happy (1/3)", after.Progress)
}

func TestMemoryUpdateUnknown(t *testing.T) {
	repo := NewMemoryJobRepository()
	_, err := repo.Update(context.Background(), "nope", func(j *jobs.Job) {})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryReturnedSnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryJobRepository()
	require.NoError(t, repo.Create(ctx, jobs.New("job_a", "a.png", "u")))

	got, err := repo.Get(ctx, "job_a")
	require.NoError(t, err)
	got.Results[jobs.VariantHappy] = jobs.VariantResult{VideoURL: "tampered"}

	clean, err := repo.Get(ctx, "job_a")
	require.NoError(t, err)
	assert.Empty(t, clean.Results)
}
