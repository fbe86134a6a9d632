package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/slidekit/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [dir]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the deck as an MCP server over stdio.
This allows AI agents to navigate the deck with tools (next, previous, goto, back,
complete, force, get_state) and to read it as the slidekit://deck resource.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.ServeMCP(opts)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("emulate", true, "Complete transitions with the stage emulator")
}
