package ports

import (
	"context"

	"github.com/aretw0/slidekit/pkg/domain"
)

// Deck is the remote-controllable surface of a running presentation.
// Implementations must be safe for concurrent use; *player.Player is the reference one.
type Deck interface {
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Goto(ctx context.Context, index int) error
	Back(ctx context.Context) error
	Complete(ctx context.Context, slideID string) error
	Force(ctx context.Context) error
	State(ctx context.Context) (domain.DeckState, error)
}
