package tests

import (
	"context"
	"testing"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/ports"
)

// DeckLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DeckLoader.
// want lists the slides the loader is expected to return, in order.
func DeckLoaderContractTest(t *testing.T, loader ports.DeckLoader, want []domain.Slide) {
	t.Helper()

	ctx := context.Background()

	t.Run("LoadDeck_Order", func(t *testing.T) {
		slides, err := loader.LoadDeck(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading deck: %v", err)
		}
		if len(slides) != len(want) {
			t.Fatalf("expected %d slides, got %d", len(want), len(slides))
		}
		for i := range want {
			if slides[i].ID != want[i].ID {
				t.Errorf("slide %d: got id %q, want %q", i, slides[i].ID, want[i].ID)
			}
		}
	})

	t.Run("LoadDeck_Attributes", func(t *testing.T) {
		slides, err := loader.LoadDeck(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading deck: %v", err)
		}
		for i := range want {
			if i >= len(slides) {
				break
			}
			got, exp := slides[i].WithDefaults(), want[i].WithDefaults()
			if got.Transition != exp.Transition {
				t.Errorf("slide %s: transition %q, want %q", exp.ID, got.Transition, exp.Transition)
			}
			if got.Delay != exp.Delay {
				t.Errorf("slide %s: delay %v, want %v", exp.ID, got.Delay, exp.Delay)
			}
			if got.OnUnload != exp.OnUnload || got.OnTransitionEnd != exp.OnTransitionEnd {
				t.Errorf("slide %s: callbacks (%q, %q), want (%q, %q)", exp.ID,
					got.OnUnload, got.OnTransitionEnd, exp.OnUnload, exp.OnTransitionEnd)
			}
		}
	})

	t.Run("LoadDeck_Repeatable", func(t *testing.T) {
		first, err := loader.LoadDeck(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading deck: %v", err)
		}
		second, err := loader.LoadDeck(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading deck: %v", err)
		}
		if len(first) != len(second) {
			t.Fatalf("deck length changed between loads: %d vs %d", len(first), len(second))
		}
	})
}
