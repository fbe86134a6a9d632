// Package player runs a deck session on a single goroutine.
//
// The runtime session is not safe for concurrent use. The player owns it and applies
// every navigation request and completion signal from one event loop, so keyboard,
// HTTP, MCP and animation timers can all drive the same deck.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/internal/runtime"
	"github.com/aretw0/slidekit/pkg/adapters/stage"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// ErrStopped is returned by requests made after the player stopped.
var ErrStopped = errors.New("player stopped")

type commandKind string

const (
	cmdNext     commandKind = "next"
	cmdPrevious commandKind = "previous"
	cmdGoto     commandKind = "goto"
	cmdBack     commandKind = "back"
	cmdComplete commandKind = "complete"
	cmdForce    commandKind = "force"
	cmdState    commandKind = "state"
)

type command struct {
	kind    commandKind
	index   int
	slideID string
	done    chan result

	// Stage signals carry the generation of the transition that animated them.
	stamped    bool
	generation uint64
}

type result struct {
	state domain.DeckState
	err   error
}

// Observer is called from the event loop after every processed command.
type Observer func(domain.DeckState)

// Player serializes access to a runtime session.
type Player struct {
	session *runtime.Session
	stage   *stage.Stage

	events    chan command
	timeout   time.Duration
	store     ports.SnapshotStore
	sessionID string
	observers []Observer
	logger    *slog.Logger

	lastSaved string

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

type config struct {
	sessionOpts []runtime.SessionOption
	emulate     bool
	duplicates  int
	queueSize   int
	timeout     time.Duration
	store       ports.SnapshotStore
	sessionID   string
	observers   []Observer
	logger      *slog.Logger
}

// Option configures a Player.
type Option func(*config)

// WithSessionOptions passes options through to the runtime session.
func WithSessionOptions(opts ...runtime.SessionOption) Option {
	return func(c *config) {
		c.sessionOpts = append(c.sessionOpts, opts...)
	}
}

// WithoutStage disables the emulated stage. Completion signals must then arrive through Complete.
func WithoutStage() Option {
	return func(c *config) {
		c.emulate = false
	}
}

// WithDuplicateSignals makes the stage emit n completion signals per animation.
func WithDuplicateSignals(n int) Option {
	return func(c *config) {
		c.duplicates = n
	}
}

// WithQueueSize sets the event queue buffer size.
func WithQueueSize(size int) Option {
	return func(c *config) {
		c.queueSize = size
	}
}

// WithCompletionTimeout forces a transition that stays in flight longer than d.
// Zero disables the watchdog.
func WithCompletionTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithSnapshotStore resumes the session from store on Start and saves it after every slide change.
func WithSnapshotStore(store ports.SnapshotStore, sessionID string) Option {
	return func(c *config) {
		c.store = store
		c.sessionID = sessionID
	}
}

// WithObserver registers a function notified with the deck state after each command.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observers = append(c.observers, o)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New builds the session for defs. The player does nothing until Start.
func New(defs []domain.Slide, opts ...Option) (*Player, error) {
	cfg := config{
		emulate:   true,
		queueSize: 64,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Player{
		events:    make(chan command, cfg.queueSize),
		timeout:   cfg.timeout,
		store:     cfg.store,
		sessionID: cfg.sessionID,
		observers: cfg.observers,
		logger:    cfg.logger,
	}

	sessionOpts := append([]runtime.SessionOption{runtime.WithLogger(cfg.logger)}, cfg.sessionOpts...)
	if cfg.emulate {
		p.stage = stage.New(p.post,
			stage.WithGeneration(func() uint64 { return p.session.Generation() }),
			stage.WithDuplicates(cfg.duplicates),
			stage.WithLogger(cfg.logger),
		)
		sessionOpts = append(sessionOpts, runtime.WithNodeFactory(p.stage.NodeFactory()))
	}

	session, err := runtime.NewSession(defs, sessionOpts...)
	if err != nil {
		if p.stage != nil {
			p.stage.Close()
		}
		return nil, err
	}
	p.session = session
	return p, nil
}

// Start restores the saved snapshot, if any, and launches the event loop.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return fmt.Errorf("player already started")
	}

	if err := p.resume(ctx); err != nil {
		return err
	}
	if p.stage != nil {
		p.stage.Arm()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.stopped = make(chan struct{})
	go p.loop(loopCtx)

	p.logger.Debug("player started", "slides", p.session.Slides().Len(), "timeout", p.timeout)
	return nil
}

// Stop ends the event loop and cancels pending animations.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	if p.stage != nil {
		p.stage.Close()
	}
}

// Done is closed once the event loop has exited.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// Next moves to the following slide.
func (p *Player) Next(ctx context.Context) error {
	_, err := p.send(ctx, command{kind: cmdNext})
	return err
}

// Previous moves to the preceding slide.
func (p *Player) Previous(ctx context.Context) error {
	_, err := p.send(ctx, command{kind: cmdPrevious})
	return err
}

// Goto moves to the slide at index.
func (p *Player) Goto(ctx context.Context, index int) error {
	_, err := p.send(ctx, command{kind: cmdGoto, index: index})
	return err
}

// Back returns to the previous entry of the navigation history.
func (p *Player) Back(ctx context.Context) error {
	_, err := p.send(ctx, command{kind: cmdBack})
	return err
}

// Complete delivers a completion signal for slideID and waits for it to be applied.
func (p *Player) Complete(ctx context.Context, slideID string) error {
	_, err := p.send(ctx, command{kind: cmdComplete, slideID: slideID})
	return err
}

// Force completes the in-flight transition.
func (p *Player) Force(ctx context.Context) error {
	_, err := p.send(ctx, command{kind: cmdForce})
	return err
}

// State returns the deck state as seen by the event loop.
func (p *Player) State(ctx context.Context) (domain.DeckState, error) {
	res, err := p.send(ctx, command{kind: cmdState})
	return res.state, err
}

// post queues a stage completion signal without waiting. The stage calls it from timer goroutines.
func (p *Player) post(slideID string, generation uint64) {
	select {
	case p.events <- command{kind: cmdComplete, slideID: slideID, stamped: true, generation: generation}:
	default:
		p.logger.Warn("event queue full, dropping completion signal", "slide", slideID)
	}
}

func (p *Player) send(ctx context.Context, cmd command) (result, error) {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped == nil {
		return result{}, fmt.Errorf("player not started")
	}

	cmd.done = make(chan result, 1)
	select {
	case p.events <- cmd:
	case <-stopped:
		return result{}, ErrStopped
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-cmd.done:
		return res, res.err
	case <-stopped:
		return result{}, ErrStopped
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

func (p *Player) loop(ctx context.Context) {
	defer close(p.stopped)

	var (
		watchdog *time.Timer
		expired  <-chan time.Time
	)
	disarm := func() {
		if watchdog != nil {
			watchdog.Stop()
		}
		watchdog, expired = nil, nil
	}
	defer disarm()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-p.events:
			err := p.apply(ctx, cmd)
			if err != nil && cmd.done == nil {
				p.logger.Error("completion signal failed", "slide", cmd.slideID, "err", err)
			}
			state := p.after(ctx)
			if cmd.done != nil {
				cmd.done <- result{state: state, err: err}
			}

		case <-expired:
			watchdog, expired = nil, nil
			p.logger.Warn("transition timed out, forcing completion", "timeout", p.timeout, "awaiting", p.session.Awaiting())
			if err := p.session.Force(ctx); err != nil {
				p.logger.Error("forced completion failed", "err", err)
			}
			p.after(ctx)
		}

		switch {
		case p.timeout <= 0:
		case p.session.Phase() == domain.PhaseIdle:
			disarm()
		case watchdog == nil:
			watchdog = time.NewTimer(p.timeout)
			expired = watchdog.C
		}
	}
}

func (p *Player) apply(ctx context.Context, cmd command) error {
	switch cmd.kind {
	case cmdNext:
		return p.session.Next(ctx)
	case cmdPrevious:
		return p.session.Previous(ctx)
	case cmdGoto:
		return p.session.Goto(ctx, cmd.index)
	case cmdBack:
		return p.session.Back(ctx)
	case cmdComplete:
		if cmd.stamped {
			return p.session.CompleteGeneration(ctx, cmd.slideID, cmd.generation)
		}
		return p.session.Complete(ctx, cmd.slideID)
	case cmdForce:
		return p.session.Force(ctx)
	case cmdState:
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd.kind)
}

// after persists and publishes the state once a command has been applied.
func (p *Player) after(ctx context.Context) domain.DeckState {
	state := p.session.State()
	p.save(ctx, state)
	for _, o := range p.observers {
		o(state)
	}
	return state
}
