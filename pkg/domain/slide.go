package domain

import "time"

const (
	// DefaultTransition is the transition kind used when a slide does not name one.
	DefaultTransition = "dissolve"

	// DefaultDelay is the transition duration used when a slide does not set one.
	DefaultDelay = 500 * time.Millisecond
)

// Tag is a state marker carried in a slide's class set.
type Tag = string

const (
	// TagCurrent marks the slide being presented. Exactly one slide carries it while idle.
	TagCurrent Tag = "current"
	// TagNext marks the slide staged to arrive once the outbound phase completes.
	TagNext Tag = "next"
	// TagIn marks the arriving slide during the inbound phase of an asynchronous transition.
	TagIn Tag = "in"
	// TagOut marks the departing slide during the outbound phase of an asynchronous transition.
	TagOut Tag = "out"
)

// Slide is the static definition of a slide, read once when the deck is loaded.
type Slide struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Transition names an entry of the transition catalog (default "dissolve").
	Transition string `json:"transition,omitempty" yaml:"transition,omitempty"`

	// Delay is the duration of this slide's transition (default 500ms).
	Delay time.Duration `json:"delay,omitempty" yaml:"delay,omitempty"`

	// OnUnload and OnTransitionEnd reference callbacks registered ahead of time by name.
	OnUnload        string `json:"on_unload,omitempty" yaml:"on_unload,omitempty"`
	OnTransitionEnd string `json:"on_transition_end,omitempty" yaml:"on_transition_end,omitempty"`

	// Current marks the slide presented first. At most one slide of a deck may set it.
	Current bool `json:"current,omitempty" yaml:"current,omitempty"`
}

// WithDefaults returns a copy of the slide with the default transition and delay applied.
func (s Slide) WithDefaults() Slide {
	if s.Transition == "" {
		s.Transition = DefaultTransition
	}
	if s.Delay <= 0 {
		s.Delay = DefaultDelay
	}
	return s
}
