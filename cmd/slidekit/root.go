package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/slidekit/internal/cli"
	"github.com/aretw0/slidekit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "slidekit",
	Short: "SlideKit presents markdown slide decks with class-based transitions",
	Long: `SlideKit presents a directory of markdown slides in the terminal, or drives it
remotely over HTTP or MCP. Frontmatter attributes choose each slide's transition,
delay and callbacks.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "Directory containing the slide deck")
	flags.Bool("debug", false, "Log every class change and completion signal to stderr")
	flags.String("session", "", "Session ID to resume and persist the deck position")
	flags.Bool("fresh", false, "Discard the saved position of --session before starting")
	flags.String("redis", "", "Redis URL for session snapshots (default: local files)")
	flags.String("catalog", "", "Transition catalog file (default: <dir>/catalog.yaml when present)")
	flags.String("callbacks", "", "Callback commands file (default: <dir>/callbacks.yaml when present)")
	flags.Duration("timeout", 0, "Force transitions still in flight after this long (0 disables)")
	flags.Int("duplicates", 1, "Completion signals emitted per animation by the stage emulator")
}

// loadOptions merges environment defaults with the flags set on cmd.
// A positional argument names the deck directory when --dir is not given.
func loadOptions(cmd *cobra.Command, args []string) (cli.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return cli.Options{}, err
	}

	flags := cmd.Flags()
	opts := cli.Options{
		RedisURL:   cfg.RedisURL,
		SessionDir: cfg.SessionDir,
		Timeout:    cfg.CompletionTimeout,
		LogLevel:   cfg.Level(),
		Addr:       cfg.HTTPAddr,
	}

	opts.Dir, _ = flags.GetString("dir")
	if !flags.Changed("dir") && len(args) > 0 {
		opts.Dir = args[0]
	}
	opts.Debug, _ = flags.GetBool("debug")
	opts.SessionID, _ = flags.GetString("session")
	opts.Fresh, _ = flags.GetBool("fresh")
	opts.CatalogPath, _ = flags.GetString("catalog")
	opts.CallbacksPath, _ = flags.GetString("callbacks")
	opts.Duplicates, _ = flags.GetInt("duplicates")

	if flags.Changed("redis") {
		opts.RedisURL, _ = flags.GetString("redis")
	}
	if flags.Changed("timeout") {
		opts.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		opts.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("plain") != nil {
		opts.Plain, _ = flags.GetBool("plain")
	}
	if flags.Lookup("emulate") != nil {
		opts.Emulate, _ = flags.GetBool("emulate")
	}

	if opts.Fresh && opts.SessionID == "" {
		return cli.Options{}, fmt.Errorf("--fresh requires --session")
	}
	if opts.Duplicates < 1 {
		return cli.Options{}, fmt.Errorf("--duplicates must be at least 1")
	}
	return opts, nil
}
