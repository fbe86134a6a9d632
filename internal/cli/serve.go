package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/slidekit"
	httpAdapter "github.com/aretw0/slidekit/pkg/adapters/http"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/observability"
	"github.com/aretw0/slidekit/pkg/player"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the deck as an HTTP remote control with Prometheus metrics on /metrics.
// Without opts.Emulate, completion signals come from clients through POST /complete/{slideID}.
func Serve(opts Options) error {
	logger := createLogger(opts)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	srv, p, closeFn, err := NewServeHandler(sigCtx, opts, logger)
	if err != nil {
		return err
	}
	defer closeFn()
	defer p.Stop()

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage("Starting slidekit server on %s", opts.Addr)
		printSystemMessage("Serving deck from: %s", opts.Dir)
		serverErrors <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		printSystemMessage("Start shutdown... Signal: %v", sigCtx.Signal())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := httpSrv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage("slidekit server stopped gracefully")
		return nil
	}
}

// NewServeHandler wires a started player, its metrics and the HTTP remote.
// The returned close function releases the snapshot store.
func NewServeHandler(ctx context.Context, opts Options, logger *slog.Logger) (*httpAdapter.Server, *player.Player, func() error, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	deck, err := OpenDeck(ctx, opts, logger, metrics.Hooks())
	if err != nil {
		return nil, nil, nil, err
	}

	store, closeStore, err := OpenStore(ctx, opts, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	var srv *httpAdapter.Server
	playerOpts := []player.Option{
		player.WithObserver(func(state domain.DeckState) { srv.Publish(state) }),
		player.WithCompletionTimeout(opts.Timeout),
		player.WithDuplicateSignals(opts.Duplicates),
	}
	if !opts.Emulate {
		playerOpts = append(playerOpts, player.WithoutStage())
	}
	if store != nil {
		playerOpts = append(playerOpts, player.WithSnapshotStore(store, opts.SessionID))
	}

	p, err := deck.Player(playerOpts...)
	if err != nil {
		_ = closeStore()
		return nil, nil, nil, err
	}
	srv = httpAdapter.NewServer(p,
		httpAdapter.WithVersion(slidekit.Version),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		httpAdapter.WithLogger(logger),
	)

	if err := p.Start(ctx); err != nil {
		_ = closeStore()
		return nil, nil, nil, err
	}
	return srv, p, closeStore, nil
}
