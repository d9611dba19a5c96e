package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/kosuke/internal/cli"
	"github.com/aretw0/kosuke/internal/config"
	"github.com/aretw0/kosuke/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kosuke",
	Short: "Kosuke walks you through provisioning a new project",
	Long: `Kosuke is an interactive setup wizard. It guides you through forking the
template and creating the hosting, database, billing, auth, email and
monitoring accounts, then writes the collected credentials to .env files.

Progress is saved after every step. Press Ctrl+C or type 'abort' at any
prompt and run kosuke again to resume where you left off.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		return cli.RunWizard(cli.WizardOptions{
			Config: cfg,
			In:     os.Stdin,
			Out:    os.Stdout,
			Styled: tui.IsTerminal(),
		})
	},
}

// Execute adds all child commands to the root command and exits with the
// status of the command that ran.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported *cli.ExitError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
