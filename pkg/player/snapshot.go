package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/slidekit/pkg/domain"
)

func (p *Player) resume(ctx context.Context) error {
	if p.store == nil || p.sessionID == "" {
		return nil
	}

	snap, err := p.store.Load(ctx, p.sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		p.logger.Debug("no snapshot to resume", "session", p.sessionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", p.sessionID, err)
	}

	// A deck edited since the snapshot may no longer contain its slides.
	if err := p.session.Restore(snap); err != nil {
		p.logger.Warn("ignoring snapshot that no longer matches the deck", "session", p.sessionID, "err", err)
		return nil
	}
	p.lastSaved = snapshotKey(snap.CurrentID, snap.History)
	p.logger.Info("session resumed", "session", p.sessionID, "slide", snap.CurrentID)
	return nil
}

func (p *Player) save(ctx context.Context, state domain.DeckState) {
	if p.store == nil || p.sessionID == "" || state.Phase != domain.PhaseIdle {
		return
	}
	key := snapshotKey(state.CurrentID, state.History)
	if key == p.lastSaved {
		return
	}

	snap, err := p.session.Snapshot()
	if err != nil {
		p.logger.Error("snapshot failed", "err", err)
		return
	}
	if err := p.store.Save(ctx, p.sessionID, snap); err != nil {
		p.logger.Error("snapshot save failed", "session", p.sessionID, "err", err)
		return
	}
	p.lastSaved = key
}

func snapshotKey(current string, history []string) string {
	return current + "|" + strings.Join(history, ",")
}
