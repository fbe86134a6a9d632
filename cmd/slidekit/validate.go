package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/slidekit/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the deck for configuration errors",
	Long:  `Loads the deck and reports unknown transition kinds, unknown callbacks, duplicate slide IDs and conflicting start slides.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, args)
		if err != nil {
			return err
		}
		if err := cli.Validate(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deck is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
