package domain

// Phase is the state of the transition controller.
type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseSync  Phase = "sync_in_flight"
	PhaseAsync Phase = "async_in_flight"
)

// SlideState is the runtime view of one slide.
type SlideState struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	Classes []string `json:"classes"`
}

// DeckState is a read-only view of a running deck, used by remotes and renderers.
type DeckState struct {
	CurrentIndex int          `json:"current_index"`
	CurrentID    string       `json:"current_id"`
	Phase        Phase        `json:"phase"`
	Awaiting     []string     `json:"awaiting,omitempty"`
	Pending      int          `json:"pending,omitempty"`
	History      []string     `json:"history"`
	Slides       []SlideState `json:"slides"`
}
