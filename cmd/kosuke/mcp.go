package main

import (
	"os"

	"github.com/aretw0/kosuke/internal/cli"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts an MCP server on standard input/output.
AI agents can call the calculate and convert_currency tools and read the
saved setup progress (secrets masked) from the kosuke://progress resource.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		return cli.ServeMCP(cfg, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
