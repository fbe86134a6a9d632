package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventUnload          EventType = "unload"
	EventTransitionStart EventType = "transition_start"
	EventHandoff         EventType = "handoff"
	EventTransitionEnd   EventType = "transition_end"
	EventSignal          EventType = "signal"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent describes a slide change as it starts, hands off, or ends.
type TransitionEvent struct {
	EventBase
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Sync   bool   `json:"sync"`
	// Elapsed is set on EventTransitionEnd.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// SignalEvent describes a completion signal received for a slide.
type SignalEvent struct {
	EventBase
	SlideID string `json:"slide_id"`
	Stale   bool   `json:"stale,omitempty"`
	Forced  bool   `json:"forced,omitempty"`
}

// CallbackEvent is handed to author callbacks.
type CallbackEvent struct {
	Name    string    `json:"name"`
	Type    EventType `json:"type"`
	SlideID string    `json:"slide_id"`
	Index   int       `json:"index"`
}

// LifecycleHooks defines callbacks for runtime observability.
// They are distinct from author callbacks: hooks never fail a navigation.
type LifecycleHooks struct {
	OnTransitionStart func(context.Context, *TransitionEvent)
	OnHandoff         func(context.Context, *TransitionEvent)
	OnTransitionEnd   func(context.Context, *TransitionEvent)
	OnSignal          func(context.Context, *SignalEvent)
}

// Merge returns hooks that call h then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransitionStart: chain(h.OnTransitionStart, other.OnTransitionStart),
		OnHandoff:         chain(h.OnHandoff, other.OnHandoff),
		OnTransitionEnd:   chain(h.OnTransitionEnd, other.OnTransitionEnd),
		OnSignal:          chain(h.OnSignal, other.OnSignal),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
