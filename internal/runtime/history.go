package runtime

import "slices"

// History is the back-navigation stack of slide IDs.
type History struct {
	entries []string
}

// NewHistory creates a new empty history.
func NewHistory() *History {
	return &History{entries: make([]string, 0)}
}

// Push records a previously current slide.
func (h *History) Push(id string) {
	h.entries = append(h.entries, id)
}

// Pop removes and returns the most recent entry.
// It reports false when the history is empty.
func (h *History) Pop() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	id := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return id, true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// IDs returns a copy of the entries, oldest first.
func (h *History) IDs() []string {
	return slices.Clone(h.entries)
}

// Reset replaces the entries.
func (h *History) Reset(ids []string) {
	h.entries = slices.Clone(ids)
}
