package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pars",
		Short: "Parser combinator tools",
	}

	rootCmd.AddCommand(newEvalCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
