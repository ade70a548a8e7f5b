package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelQueueRoundTrip(t *testing.T) {
	ctx := context.Background()
	q := NewChannelQueue(4)

	require.NoError(t, q.Enqueue(ctx, "job_1"))
	require.NoError(t, q.Enqueue(ctx, "job_2"))

	id, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job_1", id)

	id, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job_2", id)
}

func TestChannelQueuePopHonorsContext(t *testing.T) {
	q := NewChannelQueue(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChannelQueueEnqueueHonorsContext(t *testing.T) {
	q := NewChannelQueue(1)
	require.NoError(t, q.Enqueue(context.Background(), "job_1"))

	// Buffer full; the next enqueue must give up with the context.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Enqueue(ctx, "job_2")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
