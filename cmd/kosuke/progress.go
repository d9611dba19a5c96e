package main

import (
	"github.com/aretw0/kosuke/internal/cli"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/aretw0/kosuke/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or reset the saved setup progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved progress with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		return cli.ShowProgress(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved progress so the next run starts fresh",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		return cli.ResetProgress(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

var progressCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report placeholder values left in the generated env files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		return cli.CheckEnvFiles(cfg, cmd.OutOrStdout(), tui.IsTerminal())
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd, progressResetCmd, progressCheckCmd)
	rootCmd.AddCommand(progressCmd)
}
