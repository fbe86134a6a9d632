package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/slidekit/pkg/catalog"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
)

// Controller is the slide transition state machine.
//
// It moves between three phases: idle, a synchronous transition waiting for one
// completion signal from each of its two slides, and an asynchronous transition
// that runs an outbound phase on the departing slide followed by an inbound phase
// on the arriving one. Lifecycle callbacks fire exactly once per slide change.
//
// Controller is not safe for concurrent use.
type Controller struct {
	slides    *Slides
	catalog   *catalog.Catalog
	callbacks *registry.Registry
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time

	phase      domain.Phase
	generation uint64
	remaining  int
	pending   map[string]bool
	from, to  *Slide
	startedAt time.Time
}

// NewController creates an idle controller over slides.
func NewController(slides *Slides, cat *catalog.Catalog, callbacks *registry.Registry, hooks domain.LifecycleHooks, logger *slog.Logger) *Controller {
	return &Controller{
		slides:    slides,
		catalog:   cat,
		callbacks: callbacks,
		hooks:     hooks,
		logger:    logger,
		now:       time.Now,
		phase:     domain.PhaseIdle,
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() domain.Phase {
	return c.phase
}

// Idle reports whether a new transition may start.
func (c *Controller) Idle() bool {
	return c.phase == domain.PhaseIdle
}

// Generation identifies the latest transition. It increases every time one begins,
// so a signal stamped with an older generation belongs to a transition that is over.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// invalidate retires every signal stamped so far without starting a transition.
func (c *Controller) invalidate() {
	c.generation++
}

// Remaining returns the number of completion signals a synchronous transition still waits for.
func (c *Controller) Remaining() int {
	return c.remaining
}

// Begin starts the transition from one slide to another.
// The departing slide's unload callback runs first; if it fails, nothing changes.
func (c *Controller) Begin(ctx context.Context, from, to *Slide) error {
	if !c.Idle() {
		return domain.ErrTransitionInFlight
	}
	if from.ID == to.ID {
		return fmt.Errorf("%w: %s", domain.ErrSelfTransition, from.ID)
	}

	if err := c.invoke(ctx, from, from.OnUnload, domain.EventUnload); err != nil {
		return err
	}

	fromKind, err := c.catalog.Lookup(from.Transition)
	if err != nil {
		return fmt.Errorf("slide %s: %w", from.ID, err)
	}
	toKind, err := c.catalog.Lookup(to.Transition)
	if err != nil {
		return fmt.Errorf("slide %s: %w", to.ID, err)
	}

	c.generation++
	c.from, c.to = from, to
	c.startedAt = c.now()

	if fromKind.Sync && toKind.Sync {
		from.Classes.Remove(domain.TagCurrent)
		to.Classes.Add(domain.TagCurrent)
		c.phase = domain.PhaseSync
		c.remaining = 2
		c.pending = map[string]bool{from.ID: true, to.ID: true}
	} else {
		from.Classes.Add(domain.TagOut)
		to.Classes.Add(domain.TagNext)
		c.phase = domain.PhaseAsync
	}

	c.logger.Debug("transition started", "from", from.ID, "to", to.ID, "phase", c.phase)
	if c.hooks.OnTransitionStart != nil {
		c.hooks.OnTransitionStart(ctx, c.transitionEvent(domain.EventTransitionStart))
	}
	return nil
}

// Signal handles one completion signal observed on slide.
// Signals that match no pending step are stale and ignored.
func (c *Controller) Signal(ctx context.Context, slide *Slide) error {
	return c.signal(ctx, slide, false)
}

func (c *Controller) signal(ctx context.Context, slide *Slide, forced bool) error {
	switch c.phase {
	case domain.PhaseSync:
		return c.signalSync(ctx, slide, forced)
	case domain.PhaseAsync:
		return c.signalAsync(ctx, slide, forced)
	}
	c.stale(ctx, slide, forced)
	return nil
}

func (c *Controller) signalSync(ctx context.Context, slide *Slide, forced bool) error {
	if !c.pending[slide.ID] {
		c.stale(ctx, slide, forced)
		return nil
	}
	delete(c.pending, slide.ID)
	c.remaining--
	c.signaled(ctx, slide, forced)

	if c.remaining > 0 {
		return nil
	}

	arrived := c.to
	c.finish(ctx)
	if !arrived.Classes.Has(domain.TagCurrent) {
		return nil
	}
	return c.invoke(ctx, arrived, arrived.OnTransitionEnd, domain.EventTransitionEnd)
}

func (c *Controller) signalAsync(ctx context.Context, slide *Slide, forced bool) error {
	switch {
	case slide.Classes.Has(domain.TagOut):
		c.signaled(ctx, slide, forced)
		slide.Classes.Remove(domain.TagCurrent)
		slide.Classes.Remove(domain.TagOut)

		next := c.slides.Tagged(domain.TagNext)
		if next == nil {
			c.finish(ctx)
			return fmt.Errorf("handoff from %s: no slide tagged %q", slide.ID, domain.TagNext)
		}
		next.Classes.Remove(domain.TagNext)
		// "in" goes first so environments watching "current" see the inbound phase already set.
		next.Classes.Add(domain.TagIn)
		next.Classes.Add(domain.TagCurrent)

		c.logger.Debug("transition handoff", "from", slide.ID, "to", next.ID)
		if c.hooks.OnHandoff != nil {
			c.hooks.OnHandoff(ctx, c.transitionEvent(domain.EventHandoff))
		}
		return nil

	case slide.Classes.Has(domain.TagIn):
		c.signaled(ctx, slide, forced)
		slide.Classes.Remove(domain.TagIn)
		c.finish(ctx)
		return c.invoke(ctx, slide, slide.OnTransitionEnd, domain.EventTransitionEnd)
	}

	c.stale(ctx, slide, forced)
	return nil
}

// Awaiting returns the IDs of the slides whose completion signal is still expected.
func (c *Controller) Awaiting() []string {
	switch c.phase {
	case domain.PhaseSync:
		ids := make([]string, 0, len(c.pending))
		for _, s := range []*Slide{c.from, c.to} {
			if c.pending[s.ID] {
				ids = append(ids, s.ID)
			}
		}
		return ids
	case domain.PhaseAsync:
		if out := c.slides.Tagged(domain.TagOut); out != nil {
			return []string{out.ID}
		}
		if in := c.slides.Tagged(domain.TagIn); in != nil {
			return []string{in.ID}
		}
	}
	return nil
}

// Force completes the in-flight transition by delivering the signals it still waits for.
// It is a no-op while idle.
func (c *Controller) Force(ctx context.Context) error {
	for !c.Idle() {
		ids := c.Awaiting()
		if len(ids) == 0 {
			c.logger.Warn("in-flight transition awaits no slide, resetting", "phase", c.phase)
			c.finish(ctx)
			return nil
		}
		for _, id := range ids {
			slide, err := c.slides.ByID(id)
			if err != nil {
				return err
			}
			c.logger.Debug("forcing completion signal", "slide", id, "phase", c.phase)
			if err := c.signal(ctx, slide, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller) finish(ctx context.Context) {
	evt := c.transitionEvent(domain.EventTransitionEnd)
	evt.Elapsed = c.now().Sub(c.startedAt)

	c.phase = domain.PhaseIdle
	c.remaining = 0
	c.pending = nil
	c.from, c.to = nil, nil

	c.logger.Debug("transition ended", "from", evt.FromID, "to", evt.ToID, "elapsed", evt.Elapsed)
	if c.hooks.OnTransitionEnd != nil {
		c.hooks.OnTransitionEnd(ctx, evt)
	}
}

func (c *Controller) invoke(ctx context.Context, slide *Slide, name string, typ domain.EventType) error {
	if name == "" {
		return nil
	}
	if c.callbacks == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCallback, name)
	}
	c.logger.Debug("callback", "slide", slide.ID, "event", typ, "callback", name)
	return c.callbacks.Invoke(ctx, name, domain.CallbackEvent{
		Type:    typ,
		SlideID: slide.ID,
		Index:   slide.Index,
	})
}

func (c *Controller) signaled(ctx context.Context, slide *Slide, forced bool) {
	if c.hooks.OnSignal == nil {
		return
	}
	c.hooks.OnSignal(ctx, &domain.SignalEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventSignal},
		SlideID:   slide.ID,
		Forced:    forced,
	})
}

func (c *Controller) stale(ctx context.Context, slide *Slide, forced bool) {
	c.logger.Debug("stale completion signal ignored", "slide", slide.ID, "phase", c.phase)
	if c.hooks.OnSignal == nil {
		return
	}
	c.hooks.OnSignal(ctx, &domain.SignalEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: domain.EventSignal},
		SlideID:   slide.ID,
		Stale:     true,
		Forced:    forced,
	})
}

func (c *Controller) transitionEvent(typ domain.EventType) *domain.TransitionEvent {
	evt := &domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: c.now(), Type: typ},
		Sync:      c.phase == domain.PhaseSync,
	}
	if c.from != nil {
		evt.FromID = c.from.ID
	}
	if c.to != nil {
		evt.ToID = c.to.ID
	}
	return evt
}
