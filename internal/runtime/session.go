package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/adapters/memory"
	"github.com/aretw0/slidekit/pkg/catalog"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
	"github.com/aretw0/slidekit/pkg/registry"
)

type intentKind string

const (
	intentNext     intentKind = "next"
	intentPrevious intentKind = "previous"
	intentGoto     intentKind = "goto"
	intentBack     intentKind = "back"
)

type intent struct {
	kind  intentKind
	index int
}

// Session owns the state of one running deck: the slide registry, the navigation
// history, the transition controller and the navigation requests waiting for it.
//
// Session is not safe for concurrent use. Hosts serialize calls on one goroutine
// (see pkg/player).
type Session struct {
	name       string
	slides     *Slides
	history    *History
	controller *Controller
	policy     domain.OverlapPolicy
	queue      []intent

	catalog   *catalog.Catalog
	callbacks *registry.Registry
	nodes     ports.NodeFactory
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithName labels the session (used in snapshots and logs).
func WithName(name string) SessionOption {
	return func(s *Session) {
		s.name = name
	}
}

// WithCatalog sets the transition catalog (default: built-in kinds).
func WithCatalog(c *catalog.Catalog) SessionOption {
	return func(s *Session) {
		s.catalog = c
	}
}

// WithCallbacks sets the registry slides resolve their callback names against.
func WithCallbacks(r *registry.Registry) SessionOption {
	return func(s *Session) {
		s.callbacks = r
	}
}

// WithNodeFactory sets how slide class sets are created (default: memory class lists).
func WithNodeFactory(f ports.NodeFactory) SessionOption {
	return func(s *Session) {
		s.nodes = f
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) SessionOption {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithOverlapPolicy decides what happens to navigation requested mid-transition (default: queue).
func WithOverlapPolicy(p domain.OverlapPolicy) SessionOption {
	return func(s *Session) {
		s.policy = p
	}
}

// NewSession validates the deck and presents its first slide.
// Unknown transition kinds and callbacks are configuration errors reported here,
// not at transition time.
func NewSession(defs []domain.Slide, opts ...SessionOption) (*Session, error) {
	s := &Session{
		history: NewHistory(),
		policy:  domain.OverlapQueue,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.nodes == nil {
		s.nodes = memory.NewNodeFactory(s.logger)
	}

	slides, err := NewSlides(defs, s.nodes)
	if err != nil {
		return nil, err
	}
	s.slides = slides

	if err := s.validate(); err != nil {
		return nil, err
	}

	start, err := s.startSlide()
	if err != nil {
		return nil, err
	}
	start.Classes.Add(domain.TagCurrent)

	s.controller = NewController(s.slides, s.catalog, s.callbacks, s.hooks, s.logger)
	s.logger.Debug("session ready", "deck", s.name, "slides", s.slides.Len(), "start", start.ID)
	return s, nil
}

func (s *Session) validate() error {
	var errs []error
	for _, slide := range s.slides.All() {
		if _, err := s.catalog.Lookup(slide.Transition); err != nil {
			errs = append(errs, fmt.Errorf("slide %s: %w", slide.ID, err))
		}
		for _, name := range []string{slide.OnUnload, slide.OnTransitionEnd} {
			if name == "" {
				continue
			}
			if s.callbacks == nil || !s.callbacks.Has(name) {
				errs = append(errs, fmt.Errorf("slide %s: %w: %s", slide.ID, domain.ErrUnknownCallback, name))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Session) startSlide() (*Slide, error) {
	var start *Slide
	for _, slide := range s.slides.All() {
		if !slide.Current {
			continue
		}
		if start != nil {
			return nil, fmt.Errorf("slides %s and %s are both marked current", start.ID, slide.ID)
		}
		start = slide
	}
	if start == nil {
		start = s.slides.All()[0]
	}
	return start, nil
}

// Next moves to the following slide. It is a no-op on the last slide.
func (s *Session) Next(ctx context.Context) error {
	return s.do(ctx, intent{kind: intentNext})
}

// Previous moves to the preceding slide. It is a no-op on the first slide.
func (s *Session) Previous(ctx context.Context) error {
	return s.do(ctx, intent{kind: intentPrevious})
}

// Goto moves to the slide at index and records the current slide in the history.
// An index outside the deck fails with domain.ErrIndexOutOfRange.
func (s *Session) Goto(ctx context.Context, index int) error {
	if _, err := s.slides.At(index); err != nil {
		return err
	}
	return s.do(ctx, intent{kind: intentGoto, index: index})
}

// Back returns to the most recent slide in the history. It is a no-op when the history is empty.
func (s *Session) Back(ctx context.Context) error {
	return s.do(ctx, intent{kind: intentBack})
}

// Complete delivers a completion signal for the slide with the given ID.
// Once the controller is idle again, queued navigation requests are replayed.
// Environments that emit one signal per animated property must coalesce them, or
// use CompleteGeneration.
func (s *Session) Complete(ctx context.Context, slideID string) error {
	slide, err := s.slides.ByID(slideID)
	if err != nil {
		return err
	}
	return s.signal(ctx, slide)
}

// CompleteGeneration delivers a completion signal observed during the transition
// identified by generation (see Generation). Signals from an earlier transition are
// dropped as stale, so leftover duplicates never reach the transition that replaced it.
func (s *Session) CompleteGeneration(ctx context.Context, slideID string, generation uint64) error {
	slide, err := s.slides.ByID(slideID)
	if err != nil {
		return err
	}
	if generation != s.controller.Generation() {
		s.controller.stale(ctx, slide, false)
		return nil
	}
	return s.signal(ctx, slide)
}

// Generation returns the identifier of the latest transition.
func (s *Session) Generation() uint64 {
	return s.controller.Generation()
}

// Force completes the in-flight transition without waiting for its signals.
func (s *Session) Force(ctx context.Context) error {
	err := s.controller.Force(ctx)
	return errors.Join(err, s.drain(ctx))
}

// signal feeds the controller, then replays the queue even when a callback failed,
// so queued requests are never stranded behind an idle controller.
func (s *Session) signal(ctx context.Context, slide *Slide) error {
	err := s.controller.Signal(ctx, slide)
	return errors.Join(err, s.drain(ctx))
}

func (s *Session) do(ctx context.Context, in intent) error {
	if !s.controller.Idle() {
		if s.policy == domain.OverlapReject {
			return domain.ErrTransitionInFlight
		}
		s.queue = append(s.queue, in)
		s.logger.Debug("navigation queued", "intent", in.kind, "queued", len(s.queue))
		return nil
	}
	if len(s.queue) > 0 {
		// Older requests go first.
		s.queue = append(s.queue, in)
		return s.drain(ctx)
	}
	return s.apply(ctx, in)
}

// drain replays queued requests until one starts a transition or the queue is empty.
// A request that fails is dropped and the next one is tried.
func (s *Session) drain(ctx context.Context) error {
	var errs []error
	for s.controller.Idle() && len(s.queue) > 0 {
		in := s.queue[0]
		s.queue = s.queue[1:]
		s.logger.Debug("replaying queued navigation", "intent", in.kind)
		if err := s.apply(ctx, in); err != nil {
			s.logger.Warn("queued navigation failed", "intent", in.kind, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) apply(ctx context.Context, in intent) error {
	switch in.kind {
	case intentNext, intentPrevious:
		idx, err := s.slides.CurrentIndex()
		if err != nil {
			return err
		}
		if in.kind == intentNext {
			idx++
		} else {
			idx--
		}
		if idx < 0 || idx >= s.slides.Len() {
			return nil
		}
		return s.gotoIndex(ctx, idx)

	case intentGoto:
		return s.gotoIndex(ctx, in.index)

	case intentBack:
		return s.back(ctx)
	}
	return fmt.Errorf("unknown navigation %q", in.kind)
}

func (s *Session) gotoIndex(ctx context.Context, idx int) error {
	target, err := s.slides.At(idx)
	if err != nil {
		return err
	}
	current, err := s.slides.Current()
	if err != nil {
		return err
	}
	if current.ID == target.ID {
		return nil
	}

	if err := s.controller.Begin(ctx, current, target); err != nil {
		return err
	}
	s.history.Push(current.ID)
	return nil
}

func (s *Session) back(ctx context.Context) error {
	id, ok := s.history.Pop()
	if !ok {
		s.logger.Debug("history empty, cannot go back")
		return nil
	}
	target, err := s.slides.ByID(id)
	if err != nil {
		return err
	}
	current, err := s.slides.Current()
	if err != nil {
		return err
	}
	if current.ID == target.ID {
		return nil
	}

	if err := s.controller.Begin(ctx, current, target); err != nil {
		s.history.Push(id)
		return err
	}
	return nil
}

// Phase returns the controller phase.
func (s *Session) Phase() domain.Phase {
	return s.controller.Phase()
}

// Slides returns the slide registry.
func (s *Session) Slides() *Slides {
	return s.slides
}

// History returns the back-navigation entries, oldest first.
func (s *Session) History() []string {
	return s.history.IDs()
}

// Awaiting returns the IDs of the slides whose completion signal is still expected.
func (s *Session) Awaiting() []string {
	return s.controller.Awaiting()
}

// State returns a read-only view of the session.
func (s *Session) State() domain.DeckState {
	st := domain.DeckState{
		CurrentIndex: -1,
		Phase:        s.controller.Phase(),
		Awaiting:     s.controller.Awaiting(),
		Pending:      len(s.queue),
		History:      s.history.IDs(),
		Slides:       make([]domain.SlideState, 0, s.slides.Len()),
	}
	if current, err := s.slides.Current(); err == nil {
		st.CurrentIndex = current.Index
		st.CurrentID = current.ID
	}
	for _, slide := range s.slides.All() {
		st.Slides = append(st.Slides, domain.SlideState{
			ID:      slide.ID,
			Title:   slide.Title,
			Classes: slide.Classes.Classes(),
		})
	}
	return st
}

// Snapshot captures the current slide and history. It fails while a transition is in flight.
func (s *Session) Snapshot() (*domain.Snapshot, error) {
	if !s.controller.Idle() {
		return nil, domain.ErrTransitionInFlight
	}
	current, err := s.slides.Current()
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Deck:      s.name,
		CurrentID: current.ID,
		History:   s.history.IDs(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Restore moves the "current" tag and history to the snapshot's values.
// Restoring is not a navigation: no callback fires and no transition runs.
func (s *Session) Restore(snap *domain.Snapshot) error {
	if !s.controller.Idle() {
		return domain.ErrTransitionInFlight
	}
	target, err := s.slides.ByID(snap.CurrentID)
	if err != nil {
		return err
	}
	for _, id := range snap.History {
		if _, err := s.slides.ByID(id); err != nil {
			return err
		}
	}

	for _, slide := range s.slides.All() {
		slide.Classes.Remove(domain.TagCurrent)
	}
	target.Classes.Add(domain.TagCurrent)
	s.history.Reset(snap.History)
	s.queue = nil
	s.controller.invalidate()

	s.logger.Debug("session restored", "current", target.ID, "history", len(snap.History))
	return nil
}
