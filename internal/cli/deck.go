package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/slidekit"
	"github.com/aretw0/slidekit/pkg/adapters/process"
	"github.com/aretw0/slidekit/pkg/catalog"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/observability"
	"github.com/aretw0/slidekit/pkg/registry"
)

// OpenDeck loads the deck at opts.Dir with its transition catalog and callbacks.
// Built-in callbacks are always available; callbacks.yaml adds external commands.
func OpenDeck(ctx context.Context, opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*slidekit.Deck, error) {
	opts = opts.resolveDefaults()

	cat := catalog.Default()
	if opts.CatalogPath != "" {
		c, err := catalog.Load(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		cat = c
		logger.Debug("transition catalog loaded", "path", opts.CatalogPath, "kinds", cat.Names())
	}

	callbacks, err := loadCallbacks(opts, logger)
	if err != nil {
		return nil, err
	}

	deckOpts := []slidekit.Option{
		slidekit.WithCatalog(cat),
		slidekit.WithCallbacks(callbacks),
		slidekit.WithLogger(logger),
	}
	if opts.Debug {
		deckOpts = append(deckOpts, slidekit.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	for _, h := range hooks {
		deckOpts = append(deckOpts, slidekit.WithLifecycleHooks(h))
	}

	deck, err := slidekit.New(ctx, opts.Dir, deckOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing slidekit: %w", err)
	}
	return deck, nil
}

func loadCallbacks(opts Options, logger *slog.Logger) (*registry.Registry, error) {
	reg := registry.NewRegistry()
	process.RegisterBuiltins(reg, logger, os.Stderr)

	if opts.CallbacksPath == "" {
		return reg, nil
	}
	commands, err := process.LoadCallbacks(opts.CallbacksPath)
	if err != nil {
		return nil, err
	}
	runner := process.NewRunner(
		process.WithCommands(commands),
		process.WithBaseDir(opts.Dir),
		process.WithLogger(logger),
	)
	runner.RegisterAll(reg)
	logger.Debug("callback commands loaded", "path", opts.CallbacksPath, "names", runner.Names())
	return reg, nil
}
