package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slidekit/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Present the deck in the terminal",
	Long: `Presents the deck in the terminal. Transitions complete through the stage emulator
after each slide's delay.

Keys: right/space next, left previous, b/backspace back, g/home first, q/ctrl-c quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Present(opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Print raw markdown, without the banner or styling")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
