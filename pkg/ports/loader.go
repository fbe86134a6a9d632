package ports

import (
	"context"

	"github.com/aretw0/slidekit/pkg/domain"
)

// DeckLoader defines how the runtime retrieves slide definitions.
// This allows the storage layer (Loam, Memory) to be decoupled.
type DeckLoader interface {
	// LoadDeck returns the slides in presentation order.
	// Attribute defaults (transition, delay) may be left empty; the runtime applies them.
	LoadDeck(ctx context.Context) ([]domain.Slide, error)
}
