package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/slidekit/pkg/domain"
)

// LoggingHooks logs every transition at info level and every completion signal at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionStart: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition_start", "from", e.FromID, "to", e.ToID, "sync", e.Sync)
		},
		OnHandoff: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition_handoff", "from", e.FromID, "to", e.ToID)
		},
		OnTransitionEnd: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition_end", "from", e.FromID, "to", e.ToID, "elapsed", e.Elapsed)
		},
		OnSignal: func(ctx context.Context, e *domain.SignalEvent) {
			logger.DebugContext(ctx, "completion_signal", "slide", e.SlideID, "stale", e.Stale, "forced", e.Forced)
		},
	}
}
