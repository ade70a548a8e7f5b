// Package queue transports job ids from the request path to whatever worker
// runtime consumes them. Dispatch must never block the request path; the
// contract holds regardless of the backing mechanism.
package queue

import "context"

type Queue interface {
	// Enqueue hands a job id to the worker side.
	Enqueue(ctx context.Context, jobID string) error

	// Pop blocks until a job id is available or the context ends.
	Pop(ctx context.Context) (string, error)
}
