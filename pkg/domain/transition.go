package domain

// TransitionKind is a named visual strategy and its synchronization policy.
type TransitionKind struct {
	Name string `json:"name" yaml:"name"`

	// Sync reports whether the two slides swap "current" immediately.
	// Asynchronous kinds defer the swap to an outbound then inbound phase.
	Sync bool `json:"sync" yaml:"sync"`
}

// OverlapPolicy decides what happens to a navigation requested while a transition is in flight.
type OverlapPolicy string

const (
	// OverlapQueue stores the request and replays it once the controller is idle again.
	OverlapQueue OverlapPolicy = "queue"
	// OverlapReject fails the request with ErrTransitionInFlight.
	OverlapReject OverlapPolicy = "reject"
)
