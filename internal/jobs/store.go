package jobs

import "context"

// Store is the job repository contract. The default implementation is
// in-memory; a durable backing store can be substituted without changing
// the worker logic.
//
// Implementations must guarantee that readers observe consistent snapshots:
// a Get or List result never exposes a record mid-mutation.
type Store interface {
	// Create inserts a new record. It fails with an ALREADY_EXISTS error
	// when the id is taken.
	Create(ctx context.Context, job *Job) error

	// Get returns a snapshot of the job, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Job, error)

	// List returns snapshots of all known jobs in insertion order.
	List(ctx context.Context) ([]*Job, error)

	// Update applies mutate to the current record and publishes the result
	// as a new snapshot, returning a copy of it. Each job has a single
	// writer (its worker), so mutations are not expected to race.
	Update(ctx context.Context, id string, mutate func(*Job)) (*Job, error)
}
