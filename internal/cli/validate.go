package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/slidekit/internal/logging"
)

// Validate loads the deck and reports unknown transition kinds, unknown callbacks
// and conflicting start markers. On success it prints a summary of the slides to w.
func Validate(ctx context.Context, opts Options, w io.Writer) error {
	deck, err := OpenDeck(ctx, opts, logging.NewNop())
	if err != nil {
		return err
	}

	slides := deck.Slides()
	fmt.Fprintf(w, "Deck %q: %d slides\n", deck.Name, len(slides))
	for i, s := range slides {
		s = s.WithDefaults()
		marker := " "
		if s.Current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %2d. %-20s %-10s %s\n", marker, i+1, s.ID, s.Transition, s.Delay)
	}
	return nil
}
