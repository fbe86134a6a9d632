package process

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestRunner_Execute(t *testing.T) {
	skipOnWindows(t)
	out := filepath.Join(t.TempDir(), "out.txt")

	r := NewRunner(WithCommands(map[string]CommandConfig{
		"record": {
			Command:     "sh",
			Args:        []string{"-c", `echo "$SLIDEKIT_EVENT $SLIDEKIT_SLIDE_ID $SLIDEKIT_SLIDE_INDEX" > "$OUT"`},
			Environment: map[string]string{"OUT": out},
		},
	}))

	t.Run("Passes The Event Via Env Vars", func(t *testing.T) {
		err := r.Execute(context.Background(), "record", domain.CallbackEvent{
			Type:    domain.EventTransitionEnd,
			SlideID: "intro",
			Index:   2,
		})
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "transition_end intro 2\n", string(data))
	})

	t.Run("Fails For Unregistered Command", func(t *testing.T) {
		err := r.Execute(context.Background(), "hacker_script", domain.CallbackEvent{})
		assert.ErrorIs(t, err, domain.ErrUnknownCallback)
	})
}

func TestRunner_FailureIncludesStderr(t *testing.T) {
	skipOnWindows(t)

	r := NewRunner()
	r.Register("broken", "sh", "-c", "echo boom >&2; exit 3")

	err := r.Execute(context.Background(), "broken", domain.CallbackEvent{SlideID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunner_RegisterAll(t *testing.T) {
	skipOnWindows(t)

	r := NewRunner(WithCommands(map[string]CommandConfig{
		"ok": {Command: "true"},
	}))
	reg := registry.NewRegistry()
	r.RegisterAll(reg)

	assert.Equal(t, []string{"ok"}, r.Names())
	assert.NoError(t, reg.Invoke(context.Background(), "ok", domain.CallbackEvent{}))
}

func TestLoadCallbacks(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "callbacks.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
callbacks:
  - name: notify
    command: notify-send
    args: ["slide changed"]
    env:
      URGENCY: low
  - command: ignored-without-name
`), 0644))

		cmds, err := LoadCallbacks(path)
		require.NoError(t, err)
		require.Len(t, cmds, 1)
		assert.Equal(t, "notify-send", cmds["notify"].Command)
		assert.Equal(t, "low", cmds["notify"].Environment["URGENCY"])
	})

	t.Run("JSON", func(t *testing.T) {
		path := filepath.Join(dir, "callbacks.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"callbacks":[{"name":"a","command":"true"}]}`), 0644))

		cmds, err := LoadCallbacks(path)
		require.NoError(t, err)
		assert.Contains(t, cmds, "a")
	})

	t.Run("Missing File", func(t *testing.T) {
		cmds, err := LoadCallbacks(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cmds)
	})

	t.Run("Missing Command", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("callbacks:\n  - name: x\n"), 0644))
		_, err := LoadCallbacks(path)
		assert.Error(t, err)
	})
}

func TestBuiltins(t *testing.T) {
	var logs, term bytes.Buffer
	reg := registry.NewRegistry()
	RegisterBuiltins(reg, slog.New(slog.NewTextHandler(&logs, nil)), &term)

	ctx := context.Background()
	require.NoError(t, reg.Invoke(ctx, "log", domain.CallbackEvent{Type: domain.EventUnload, SlideID: "a"}))
	require.NoError(t, reg.Invoke(ctx, "bell", domain.CallbackEvent{}))

	assert.Contains(t, logs.String(), "slide=a")
	assert.Equal(t, "\a", term.String())
}
