package main

import (
	"github.com/aretw0/kosuke/internal/cli"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the example engine HTTP service",
	Long: `Starts the arithmetic and currency conversion service. Variables from a
.env file in the working directory are loaded first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.LoadDotEnv(".env"); err != nil {
			return err
		}
		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		return cli.ServeEngine(cfg, port, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on (overrides server.port)")
}
