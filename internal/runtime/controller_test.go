package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/adapters/memory"
	"github.com/aretw0/slidekit/pkg/catalog"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, defs ...domain.Slide) (*Controller, *Slides) {
	t.Helper()
	slides, err := NewSlides(defs, memory.NewNodeFactory(nil))
	require.NoError(t, err)
	first, _ := slides.At(0)
	first.Classes.Add(domain.TagCurrent)
	return NewController(slides, catalog.Default(), nil, domain.LifecycleHooks{}, logging.NewNop()), slides
}

func TestController_BeginRequiresIdle(t *testing.T) {
	ctx := context.Background()
	c, slides := newTestController(t, domain.Slide{ID: "a"}, domain.Slide{ID: "b"}, domain.Slide{ID: "c"})
	a, _ := slides.ByID("a")
	b, _ := slides.ByID("b")
	cc, _ := slides.ByID("c")

	require.NoError(t, c.Begin(ctx, a, b))
	assert.Equal(t, 2, c.Remaining())
	assert.ErrorIs(t, c.Begin(ctx, b, cc), domain.ErrTransitionInFlight)

	assert.ErrorIs(t, func() error {
		c.phase = domain.PhaseIdle
		return c.Begin(ctx, b, b)
	}(), domain.ErrSelfTransition)
}

func TestController_GenerationAdvancesPerTransition(t *testing.T) {
	ctx := context.Background()
	c, slides := newTestController(t, domain.Slide{ID: "a"}, domain.Slide{ID: "b"})
	a, _ := slides.ByID("a")
	b, _ := slides.ByID("b")

	assert.Equal(t, uint64(0), c.Generation())
	require.NoError(t, c.Begin(ctx, a, b))
	assert.Equal(t, uint64(1), c.Generation())
	require.NoError(t, c.Force(ctx))
	assert.Equal(t, uint64(1), c.Generation(), "resolving does not start a new generation")

	assert.ErrorIs(t, c.Begin(ctx, b, b), domain.ErrSelfTransition)
	assert.Equal(t, uint64(1), c.Generation(), "a rejected transition keeps the generation")

	require.NoError(t, c.Begin(ctx, b, a))
	assert.Equal(t, uint64(2), c.Generation())
}

func TestController_SyncCounter(t *testing.T) {
	ctx := context.Background()
	c, slides := newTestController(t, domain.Slide{ID: "a"}, domain.Slide{ID: "b"})
	a, _ := slides.ByID("a")
	b, _ := slides.ByID("b")

	require.NoError(t, c.Begin(ctx, a, b))
	require.NoError(t, c.Signal(ctx, a))
	assert.Equal(t, 1, c.Remaining())
	require.NoError(t, c.Signal(ctx, b))
	assert.Equal(t, 0, c.Remaining())
	assert.True(t, c.Idle())
}

func TestController_ElapsedReported(t *testing.T) {
	ctx := context.Background()
	c, slides := newTestController(t, domain.Slide{ID: "a", Transition: "fade"}, domain.Slide{ID: "b"})
	a, _ := slides.ByID("a")
	b, _ := slides.ByID("b")

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	var elapsed time.Duration
	c.hooks.OnTransitionEnd = func(ctx context.Context, e *domain.TransitionEvent) {
		elapsed = e.Elapsed
	}

	require.NoError(t, c.Begin(ctx, a, b))
	clock = clock.Add(300 * time.Millisecond)
	require.NoError(t, c.Signal(ctx, a))
	clock = clock.Add(200 * time.Millisecond)
	require.NoError(t, c.Signal(ctx, b))

	assert.Equal(t, 500*time.Millisecond, elapsed)
}

func TestController_MissingCallbackRegistry(t *testing.T) {
	c, slides := newTestController(t, domain.Slide{ID: "a", OnUnload: "x"}, domain.Slide{ID: "b"})
	a, _ := slides.ByID("a")
	b, _ := slides.ByID("b")

	err := c.Begin(context.Background(), a, b)
	assert.ErrorIs(t, err, domain.ErrUnknownCallback)
	assert.True(t, c.Idle())
}
