package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codops",
	Short: "COD operations console inventory ledger CLI",
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("codops", "", true).Print()
		fmt.Println()
		_ = cmd.Help()
	},
}

// Execute runs the root command after applying registered extensions.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
