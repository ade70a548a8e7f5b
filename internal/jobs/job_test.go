package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusQueued.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestNewJobDefaults(t *testing.T) {
	j := New("job_1", "cat.png", "http://files/cat.png")

	assert.Equal(t, "job_1", j.ID)
	assert.Equal(t, StatusQueued, j.Status)
	assert.Equal(t, "Job queued", j.Progress)
	assert.Equal(t, "cat.png", j.ImageFilename)
	assert.Equal(t, "http://files/cat.png", j.ImageURL)
	assert.NotNil(t, j.Results)
	assert.NotNil(t, j.Errors)
	assert.Empty(t, j.Results)
	assert.WithinDuration(t, time.Now().UTC(), j.CreatedAt, time.Second)
	assert.Nil(t, j.CompletedAt)
}

func TestCloneIsIndependent(t *testing.T) {
	now := time.Now().UTC()
	j := New("job_1", "cat.png", "http://files/cat.png")
	j.Results[VariantHappy] = VariantResult{VideoURL: "http://files/happy.mp4"}
	j.Errors[VariantSad] = "boom"
	j.CompletedAt = &now

	c := j.Clone()
	require.NotSame(t, j, c)

	c.Results[VariantAngry] = VariantResult{VideoURL: "other"}
	c.Errors[VariantAngry] = "other"
	*c.CompletedAt = c.CompletedAt.Add(time.Hour)

	assert.Len(t, j.Results, 1)
	assert.Len(t, j.Errors, 1)
	assert.Equal(t, now, *j.CompletedAt)
}

func TestVariantOrderIsFixed(t *testing.T) {
	require.Equal(t, []Variant{VariantHappy, VariantSad, VariantAngry}, Variants())
}

func TestPromptsAreDistinct(t *testing.T) {
	seen := map[string]Variant{}
	for _, v := range Variants() {
		p := PromptFor(v)
		require.NotEmpty(t, p, "variant %s has no prompt", v)
		if prev, dup := seen[p]; dup {
			t.Fatalf("variants %s and %s share a prompt", prev, v)
		}
		seen[p] = v
	}
}

func TestDefaultGenerationConfig(t *testing.T) {
	cfg := DefaultGenerationConfig()
	assert.Equal(t, "480p", cfg.Resolution)
	assert.Equal(t, "1:1", cfg.AspectRatio)
	assert.Equal(t, 81, cfg.NumFrames)
	assert.Equal(t, 16, cfg.FramesPerSecond)
}
