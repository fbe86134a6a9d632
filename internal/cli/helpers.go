package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/adapters/file"
	"github.com/aretw0/slidekit/pkg/adapters/redis"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the slides on Stdout).
// At the default info level nothing is logged, so the presenter screen stays clean.
func createLogger(opts Options) *slog.Logger {
	if opts.Debug {
		return logging.New(slog.LevelDebug)
	}
	if opts.LogLevel != slog.LevelInfo {
		return logging.New(opts.LogLevel)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stderr.
func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ">>> %s\n", fmt.Sprintf(format, args...))
}

// OpenStore returns the snapshot store for opts, or nil when no session is requested.
// Redis is used when a URL is configured, the local filesystem otherwise.
// With Fresh, the existing snapshot of the session is dropped.
func OpenStore(ctx context.Context, opts Options, logger *slog.Logger) (ports.SnapshotStore, func() error, error) {
	noop := func() error { return nil }
	if opts.SessionID == "" {
		return nil, noop, nil
	}

	var (
		store   ports.SnapshotStore
		closeFn = noop
	)
	if opts.RedisURL != "" {
		rs, err := redis.New(opts.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to configure redis store: %w", err)
		}
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, noop, fmt.Errorf("failed to reach redis: %w", err)
		}
		store, closeFn = rs, rs.Close
		logger.Info("using redis snapshot store", "session", opts.SessionID)
	} else {
		store = file.New(opts.SessionDir)
		logger.Info("using file snapshot store", "session", opts.SessionID)
	}

	if opts.Fresh {
		if err := store.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			_ = closeFn()
			return nil, noop, fmt.Errorf("failed to reset session %s: %w", opts.SessionID, err)
		}
	}
	return store, closeFn, nil
}
