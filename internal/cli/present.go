package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/slidekit"
	"github.com/aretw0/slidekit/internal/presentation/tui"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/player"
	"github.com/aretw0/slidekit/pkg/ports"
)

// Present runs the deck in the terminal until the presenter quits or a signal arrives.
func Present(opts Options) error {
	logger := createLogger(opts)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	deck, err := OpenDeck(sigCtx, opts, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := OpenStore(sigCtx, opts, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	render := tui.RenderFunc(tui.PlainRenderer)
	if !opts.Plain {
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w - 4
		}
		if render, err = tui.NewRenderer(width); err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
	}

	kb, err := tui.NewKeyboard(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer kb.Close()

	screen := tui.NewScreen(os.Stdout, tui.WithRenderer(render), tui.WithRawMode(kb.Raw()))
	if !opts.Plain {
		tui.PrintBanner(os.Stdout, screen.Profile(), slidekit.Version)
	}

	frames := newFrameBox()
	playerOpts := []player.Option{
		player.WithObserver(frames.put),
		player.WithCompletionTimeout(opts.Timeout),
		player.WithDuplicateSignals(opts.Duplicates),
	}
	if store != nil {
		playerOpts = append(playerOpts, player.WithSnapshotStore(store, opts.SessionID))
	}

	p, err := deck.Play(sigCtx, playerOpts...)
	if err != nil {
		return err
	}
	defer p.Stop()

	slides := deck.Slides()
	draw := func(state domain.DeckState) {
		if state.CurrentIndex < 0 || state.CurrentIndex >= len(slides) {
			return
		}
		if err := screen.Draw(slides[state.CurrentIndex], state); err != nil {
			logger.Error("draw failed", "err", err)
		}
	}

	state, err := p.State(sigCtx)
	if err != nil {
		return err
	}
	draw(state)

	keys := kb.Listen(sigCtx)
	for {
		select {
		case <-sigCtx.Done():
			return nil
		case <-p.Done():
			return nil
		case state := <-frames:
			draw(state)
		case action, ok := <-keys:
			if !ok {
				return nil
			}
			quit, err := Dispatch(sigCtx, p, action)
			if quit {
				return nil
			}
			if err != nil && !errors.Is(err, domain.ErrTransitionInFlight) {
				screen.Message("%v", err)
			}
		}
	}
}

// Dispatch applies a key action to deck. It reports whether the presenter asked to quit.
func Dispatch(ctx context.Context, deck ports.Deck, action tui.Action) (bool, error) {
	switch action {
	case tui.ActionNext:
		return false, deck.Next(ctx)
	case tui.ActionPrevious:
		return false, deck.Previous(ctx)
	case tui.ActionBack:
		return false, deck.Back(ctx)
	case tui.ActionFirst:
		return false, deck.Goto(ctx, 0)
	case tui.ActionQuit:
		return true, nil
	}
	return false, nil
}

// frameBox keeps the latest state published by the player, dropping older ones.
// It has a single producer: the player event loop.
type frameBox chan domain.DeckState

func newFrameBox() frameBox {
	return make(frameBox, 1)
}

func (f frameBox) put(state domain.DeckState) {
	select {
	case <-f:
	default:
	}
	select {
	case f <- state:
	default:
	}
}
