package cli

import (
	"context"
	"log"
	"os"

	"github.com/aretw0/slidekit"
	"github.com/aretw0/slidekit/pkg/adapters/mcp"
	"github.com/aretw0/slidekit/pkg/player"
)

// ServeMCP exposes the deck as MCP tools over stdio.
// Logs go to stderr; stdout carries the JSON-RPC stream.
func ServeMCP(opts Options) error {
	log.SetOutput(os.Stderr)
	logger := createLogger(opts)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	deck, err := OpenDeck(sigCtx, opts, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := OpenStore(sigCtx, opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	playerOpts := []player.Option{
		player.WithCompletionTimeout(opts.Timeout),
		player.WithDuplicateSignals(opts.Duplicates),
	}
	if !opts.Emulate {
		playerOpts = append(playerOpts, player.WithoutStage())
	}
	if store != nil {
		playerOpts = append(playerOpts, player.WithSnapshotStore(store, opts.SessionID))
	}

	p, err := deck.Play(sigCtx, playerOpts...)
	if err != nil {
		return err
	}
	defer p.Stop()

	logger.Info("starting slidekit MCP server (stdio)", "deck", deck.Name)
	srv := mcp.NewServer(p, slidekit.Version, mcp.WithLogger(logger))
	return srv.ServeStdio()
}
