package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Options carries the settings shared by the run, serve, mcp and validate commands.
type Options struct {
	Dir       string
	Debug     bool
	LogLevel  slog.Level
	SessionID string
	Fresh     bool

	RedisURL   string
	SessionDir string

	CatalogPath   string
	CallbacksPath string

	Timeout    time.Duration
	Duplicates int
	Addr       string
	Plain      bool

	// Emulate keeps the stage emulator for remote-controlled decks (serve, mcp),
	// so nobody has to report completion signals.
	Emulate bool
}

const (
	defaultCatalogFile   = "catalog.yaml"
	defaultCallbacksFile = "callbacks.yaml"
)

// resolveDefaults points unset config files at the deck directory when they exist there.
func (o Options) resolveDefaults() Options {
	if o.CatalogPath == "" {
		o.CatalogPath = existing(filepath.Join(o.Dir, defaultCatalogFile))
	}
	if o.CallbacksPath == "" {
		o.CallbacksPath = existing(filepath.Join(o.Dir, defaultCallbacksFile))
	}
	return o
}

func existing(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
