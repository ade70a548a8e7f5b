// Package shutdown provides graceful shutdown utilities.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"clipgen/internal/pkg/logger"
)

// Manager handles graceful shutdown of service components.
type Manager struct {
	log      *logger.Logger
	timeout  time.Duration
	mu       sync.Mutex
	handlers []handler
	done     chan struct{}
}

type handler struct {
	name    string
	cleanup func(ctx context.Context) error
}

// NewManager creates a shutdown manager with the given cleanup timeout.
func NewManager(log *logger.Logger, timeout time.Duration) *Manager {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Manager{
		log:     log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// Register adds a cleanup handler. Handlers run in reverse registration
// order, so dependencies registered first are closed last.
func (m *Manager) Register(name string, cleanup func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler{name: name, cleanup: cleanup})
}

// Wait blocks until a shutdown signal is received, then runs cleanup.
func (m *Manager) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	m.log.Info("shutdown signal received", "signal", sig.String())

	m.Shutdown()
}

// Shutdown runs all cleanup handlers LIFO within the configured timeout.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	handlers := make([]handler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.log.Info("starting graceful shutdown", "handlers", len(handlers))

	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		start := time.Now()
		if err := h.cleanup(ctx); err != nil {
			m.log.Error("shutdown handler failed",
				"name", h.name,
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		if ctx.Err() != nil {
			m.log.Warn("shutdown timeout exceeded", "remaining", i)
			break
		}
	}

	m.log.Info("graceful shutdown completed")
	close(m.done)
}

// Context returns a context that is canceled when shutdown completes.
func (m *Manager) Context() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-m.done
		cancel()
	}()
	return ctx
}
