package worker

import (
	"context"
	"sync"
	"time"

	"clipgen/internal/pkg/errors"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/queue"
)

// Run consumes job ids from the queue until the context is canceled. One
// Run loop handles one job at a time; concurrency across jobs comes from
// running several loops (see RunPool).
func Run(ctx context.Context, q queue.Queue, p *Processor, log *logger.Logger) error {
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("worker")

	for {
		select {
		case <-ctx.Done():
			log.Info("worker context canceled, stopping")
			return ctx.Err()
		default:
		}

		// Bound each pop so shutdown is noticed on idle queues.
		popCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		jobID, err := q.Pop(popCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				log.Info("worker stopping due to context cancellation")
				return ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			log.Warn("queue pop error, retrying", "error", err.Error())
			time.Sleep(time.Second)
			continue
		}

		if jobID == "" {
			continue
		}

		jobCtx := logger.ContextWithJobID(ctx, jobID)
		jobLog := log.WithJobID(jobID)

		jobLog.Info("processing job")
		startTime := time.Now()

		if err := p.ProcessJob(jobCtx, jobID); err != nil {
			jobLog.Error("job processing error",
				"error", err.Error(),
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
		} else {
			jobLog.Info("job finished",
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
		}
	}
}

// RunPool starts n Run loops and returns after all of them stop. Distinct
// jobs process concurrently across loops; variants within one job never do.
func RunPool(ctx context.Context, n int, q queue.Queue, p *Processor, log *logger.Logger) {
	if n <= 0 {
		n = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Run(ctx, q, p, log)
		}()
	}
	wg.Wait()
}
