package process

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
)

// RegisterBuiltins adds the callbacks every deck can use without configuration:
// "log" records the event on logger and "bell" rings the terminal bell on w.
func RegisterBuiltins(reg *registry.Registry, logger *slog.Logger, w io.Writer) {
	reg.Register("log", func(ctx context.Context, evt domain.CallbackEvent) error {
		logger.InfoContext(ctx, "slide callback", "event", evt.Type, "slide", evt.SlideID, "index", evt.Index)
		return nil
	})
	reg.Register("bell", func(ctx context.Context, evt domain.CallbackEvent) error {
		_, err := io.WriteString(w, "\a")
		return err
	})
}
