package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_InvokePassesEvent(t *testing.T) {
	reg := registry.NewRegistry()

	var got domain.CallbackEvent
	reg.Register("intro", func(ctx context.Context, evt domain.CallbackEvent) error {
		got = evt
		return nil
	})

	err := reg.Invoke(context.Background(), "intro", domain.CallbackEvent{
		Type:    domain.EventTransitionEnd,
		SlideID: "b",
		Index:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, "intro", got.Name, "Invoke should stamp the callback name")
	assert.Equal(t, "b", got.SlideID)
	assert.Equal(t, domain.EventTransitionEnd, got.Type)
}

func TestRegistry_UnknownCallback(t *testing.T) {
	reg := registry.NewRegistry()

	err := reg.Invoke(context.Background(), "missing", domain.CallbackEvent{})
	assert.ErrorIs(t, err, domain.ErrUnknownCallback)
	assert.False(t, reg.Has("missing"))
}

func TestRegistry_ErrorPropagates(t *testing.T) {
	reg := registry.NewRegistry()
	boom := errors.New("boom")
	reg.Register("fail", func(ctx context.Context, evt domain.CallbackEvent) error {
		return boom
	})

	err := reg.Invoke(context.Background(), "fail", domain.CallbackEvent{})
	assert.ErrorIs(t, err, boom)
}

func TestRegistry_OverwriteAndNames(t *testing.T) {
	reg := registry.NewRegistry()
	calls := 0
	reg.Register("b", func(ctx context.Context, evt domain.CallbackEvent) error { return nil })
	reg.Register("a", func(ctx context.Context, evt domain.CallbackEvent) error { return nil })
	reg.Register("a", func(ctx context.Context, evt domain.CallbackEvent) error {
		calls++
		return nil
	})

	require.NoError(t, reg.Invoke(context.Background(), "a", domain.CallbackEvent{}))
	assert.Equal(t, 1, calls, "the latest registration wins")
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}
