package queue

import "context"

// ChannelQueue is the in-process dispatch mechanism: a buffered channel of
// job ids consumed by the worker pool running in the same process.
type ChannelQueue struct {
	ch chan string
}

func NewChannelQueue(buffer int) *ChannelQueue {
	if buffer <= 0 {
		buffer = 64
	}
	return &ChannelQueue{ch: make(chan string, buffer)}
}

func (q *ChannelQueue) Enqueue(ctx context.Context, jobID string) error {
	select {
	case q.ch <- jobID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *ChannelQueue) Pop(ctx context.Context) (string, error) {
	select {
	case id := <-q.ch:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

var _ Queue = (*ChannelQueue)(nil)
