package main

import (
	"fmt"

	"github.com/aretw0/kosuke"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kosuke",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kosuke version %s\n", kosuke.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
