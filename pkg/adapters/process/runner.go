package process

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/slidekit/internal/logging"
	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/aretw0/slidekit/pkg/registry"
)

// Runner executes the external commands bound to callback names.
// Only registered commands can run; slides never name a command directly.
type Runner struct {
	commands map[string]CommandConfig
	baseDir  string
	timeout  time.Duration
	logger   *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithCommands populates the allow-list from a loaded config.
func WithCommands(commands map[string]CommandConfig) RunnerOption {
	return func(r *Runner) {
		for name, c := range commands {
			c.Name = name
			r.commands[name] = c
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithTimeout bounds each execution. Zero means no limit beyond the caller's context.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		commands: make(map[string]CommandConfig),
		timeout:  10 * time.Second,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.commands[name] = CommandConfig{Name: name, Command: command, Args: args}
}

// Names returns the registered callback names in lexical order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterAll binds every command of the runner as a callback in reg.
func (r *Runner) RegisterAll(reg *registry.Registry) {
	for _, name := range r.Names() {
		reg.Register(name, r.Callback(name))
	}
}

// Callback returns a registry callback running the named command.
func (r *Runner) Callback(name string) registry.Callback {
	return func(ctx context.Context, evt domain.CallbackEvent) error {
		return r.Execute(ctx, name, evt)
	}
}

// Execute runs the command registered under name.
// The event is passed through environment variables, never as command-line arguments,
// so slide content cannot inject flags. stdout is logged at debug level.
func (r *Runner) Execute(ctx context.Context, name string, evt domain.CallbackEvent) error {
	c, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("%w: process %s not registered", domain.ErrUnknownCallback, name)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	cmd.Dir = r.baseDir
	cmd.Env = append(cmd.Environ(), Environment(name, evt)...)
	for k, v := range c.Environment {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("callback %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}

	r.logger.Debug("callback command finished", "callback", name, "slide", evt.SlideID, "output", strings.TrimSpace(stdout.String()))
	return nil
}

// Environment returns the variables describing evt to a callback command.
func Environment(name string, evt domain.CallbackEvent) []string {
	return []string{
		"SLIDEKIT_CALLBACK=" + name,
		"SLIDEKIT_EVENT=" + string(evt.Type),
		"SLIDEKIT_SLIDE_ID=" + evt.SlideID,
		"SLIDEKIT_SLIDE_INDEX=" + strconv.Itoa(evt.Index),
	}
}
