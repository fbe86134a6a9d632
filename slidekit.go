package slidekit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/internal/runtime"
	loamAdapter "github.com/aretw0/slidekit/pkg/adapters/loam"
	"github.com/aretw0/slidekit/pkg/catalog"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/player"
	"github.com/aretw0/slidekit/pkg/ports"
	"github.com/aretw0/slidekit/pkg/registry"
)

// Deck is the high-level entry point of the library: a loaded, validated slide deck
// together with the configuration its sessions run with.
type Deck struct {
	Name string

	slides    []domain.Slide
	loader    ports.DeckLoader
	catalog   *catalog.Catalog
	callbacks *registry.Registry
	hooks     domain.LifecycleHooks
	policy    domain.OverlapPolicy
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Deck.
type Option func(*Deck)

// WithLoader injects a custom DeckLoader, bypassing the default Loam initialization.
func WithLoader(l ports.DeckLoader) Option {
	return func(d *Deck) {
		d.loader = l
	}
}

// WithCatalog sets the transition catalog (default: dissolve, fade, slide).
func WithCatalog(c *catalog.Catalog) Option {
	return func(d *Deck) {
		d.catalog = c
	}
}

// WithCallbacks sets the registry that slide callback names resolve against.
func WithCallbacks(r *registry.Registry) Option {
	return func(d *Deck) {
		d.callbacks = r
	}
}

// WithCallback registers a single callback under name.
func WithCallback(name string, fn registry.Callback) Option {
	return func(d *Deck) {
		if d.callbacks == nil {
			d.callbacks = registry.NewRegistry()
		}
		d.callbacks.Register(name, fn)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Deck) {
		d.hooks = d.hooks.Merge(hooks)
	}
}

// WithOverlapPolicy decides what happens to navigation requested mid-transition (default: queue).
func WithOverlapPolicy(p domain.OverlapPolicy) Option {
	return func(d *Deck) {
		d.policy = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deck) {
		d.logger = logger
	}
}

// New loads and validates a deck.
// By default, it reads a Loam repository of markdown slides at dir.
// If WithLoader option is provided, dir is only used as the deck name and may be empty.
func New(ctx context.Context, dir string, opts ...Option) (*Deck, error) {
	d := &Deck{policy: domain.OverlapQueue}
	for _, opt := range opts {
		opt(d)
	}

	if d.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		l, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, err
		}
		d.loader = l
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			d.Name = filepath.Base(abs)
		}
	}

	if d.logger == nil {
		d.logger = logging.NewNop()
	}
	if d.Name != "" {
		d.logger = d.logger.With("deck", d.Name)
	}
	if d.catalog == nil {
		d.catalog = catalog.Default()
	}
	if d.callbacks == nil {
		d.callbacks = registry.NewRegistry()
	}

	slides, err := d.loader.LoadDeck(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	d.slides = slides

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Slides returns the slide definitions in presentation order.
func (d *Deck) Slides() []domain.Slide {
	return append([]domain.Slide(nil), d.slides...)
}

// Callbacks returns the callback registry of the deck.
func (d *Deck) Callbacks() *registry.Registry {
	return d.callbacks
}

// Validate reports unknown transition kinds, unknown callbacks and conflicting
// start markers, all at once.
func (d *Deck) Validate() error {
	_, err := runtime.NewSession(d.slides, d.sessionOptions()...)
	return err
}

// Player builds a player for the deck without starting it.
// Options given here take precedence over the deck configuration.
func (d *Deck) Player(opts ...player.Option) (*player.Player, error) {
	all := []player.Option{
		player.WithLogger(d.logger),
		player.WithSessionOptions(d.sessionOptions()...),
	}
	return player.New(d.slides, append(all, opts...)...)
}

// Play starts a player for the deck. Stop it when the presentation ends.
func (d *Deck) Play(ctx context.Context, opts ...player.Option) (*player.Player, error) {
	p, err := d.Player(opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Start(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *Deck) sessionOptions() []runtime.SessionOption {
	return []runtime.SessionOption{
		runtime.WithName(d.Name),
		runtime.WithCatalog(d.catalog),
		runtime.WithCallbacks(d.callbacks),
		runtime.WithLifecycleHooks(d.hooks),
		runtime.WithOverlapPolicy(d.policy),
		runtime.WithLogger(d.logger),
	}
}
