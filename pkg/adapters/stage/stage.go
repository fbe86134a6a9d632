// Package stage emulates a rendering environment for slide class sets.
//
// A browser reports the end of a CSS transition with a transitionend event. The stage
// does the same for the terminal presenter and for tests: whenever a class change
// starts an animation on a slide, it schedules a completion signal for that slide once
// the slide's delay has elapsed.
//
// Every signal is stamped with the transition generation current when its animation
// started, so the runtime can drop duplicates that outlive their transition. Nodes do
// not animate until the stage is armed: the classes a deck starts or resumes with are
// applied, not animated.
package stage

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/adapters/memory"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// EmitFunc receives the completion signals of the stage, keyed by slide ID.
// It is called from timer goroutines and must hand the signal over to the runtime's loop.
type EmitFunc func(slideID string, generation uint64)

// GenerationFunc reports the transition generation at the moment an animation starts.
type GenerationFunc func() uint64

// Stage creates animated nodes and owns their pending timers.
type Stage struct {
	emit       EmitFunc
	generation GenerationFunc
	duplicates int
	logger     *slog.Logger

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	armed  bool
	closed bool
}

// Option configures a Stage.
type Option func(*Stage)

// WithDuplicates emits n signals per animation, the way a browser fires one
// transitionend per animated CSS property.
func WithDuplicates(n int) Option {
	return func(s *Stage) {
		if n > 0 {
			s.duplicates = n
		}
	}
}

// WithGeneration sets where signals get their generation stamp (default: always zero).
func WithGeneration(fn GenerationFunc) Option {
	return func(s *Stage) {
		s.generation = fn
	}
}

// WithLogger sets the logger used to trace scheduled signals.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stage) {
		s.logger = logger
	}
}

// New creates a stage that delivers completion signals to emit.
func New(emit EmitFunc, opts ...Option) *Stage {
	s := &Stage{
		emit:       emit,
		generation: func() uint64 { return 0 },
		duplicates: 1,
		logger:     logging.NewNop(),
		timers:     make(map[*time.Timer]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NodeFactory returns the ports.NodeFactory creating this stage's nodes.
func (s *Stage) NodeFactory() ports.NodeFactory {
	return func(slide domain.Slide) ports.ClassSet {
		return &Node{
			id:      slide.ID,
			delay:   slide.WithDefaults().Delay,
			classes: memory.NewClassList(slide.ID),
			stage:   s,
		}
	}
}

// Arm makes later class changes animate. Changes made before are applied silently.
func (s *Stage) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
}

// Pending returns the number of signals scheduled but not yet emitted.
func (s *Stage) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels every pending signal. Later class changes schedule nothing.
func (s *Stage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.timers {
		t.Stop()
	}
	s.timers = make(map[*time.Timer]struct{})
	s.closed = true
}

func (s *Stage) schedule(slideID string, delay time.Duration, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.armed {
		return
	}

	generation := s.generation()
	s.logger.Debug("animation scheduled", "slide", slideID, "class", reason, "delay", delay, "signals", s.duplicates, "generation", generation)
	for i := 0; i < s.duplicates; i++ {
		var t *time.Timer
		t = time.AfterFunc(delay, func() {
			s.mu.Lock()
			_, live := s.timers[t]
			delete(s.timers, t)
			s.mu.Unlock()
			if live {
				s.emit(slideID, generation)
			}
		})
		s.timers[t] = struct{}{}
	}
}

// Node is a slide's class set on the stage.
// Adding "out" or "in" starts an animation. So does a change of "current" on a node that
// is not staged for an asynchronous transition (the synchronous class swap).
type Node struct {
	id      string
	delay   time.Duration
	classes *memory.ClassList
	stage   *Stage
}

// Add adds class and schedules a signal when the change animates the slide.
func (n *Node) Add(class string) {
	if n.classes.Has(class) {
		return
	}
	n.classes.Add(class)

	switch class {
	case domain.TagOut, domain.TagIn:
		n.stage.schedule(n.id, n.delay, class)
	case domain.TagCurrent:
		if !n.staged() {
			n.stage.schedule(n.id, n.delay, class)
		}
	}
}

// Remove removes class and schedules a signal when the change animates the slide.
func (n *Node) Remove(class string) {
	if !n.classes.Has(class) {
		return
	}
	n.classes.Remove(class)

	if class == domain.TagCurrent && !n.staged() {
		n.stage.schedule(n.id, n.delay, class)
	}
}

// Has reports whether class is present.
func (n *Node) Has(class string) bool {
	return n.classes.Has(class)
}

// Classes returns a copy of the classes in insertion order.
func (n *Node) Classes() []string {
	return n.classes.Classes()
}

func (n *Node) staged() bool {
	return n.classes.Has(domain.TagOut) || n.classes.Has(domain.TagIn) || n.classes.Has(domain.TagNext)
}
