package domain

import "time"

// Snapshot is the resumable view of a presentation.
// It is only taken while no transition is in flight.
type Snapshot struct {
	Deck      string    `json:"deck"`
	CurrentID string    `json:"current_id"`
	History   []string  `json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.History = append([]string(nil), s.History...)
	return &c
}
