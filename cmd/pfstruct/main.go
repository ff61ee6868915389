// Package main provides the CLI entry point for pfstruct-go.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pfstruct-go/internal/config"
)

var cfg config.Config

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pfstruct",
		Short: "Extract portfolio statements from Excel files",
		Long: `pfstruct-go reads a portfolio statement workbook (personal details,
summary and holdings at fixed positions) and outputs structured JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				log.Error().Err(err).Msg("Invalid configuration")
			}
			return err
		},
	}

	rootCmd.AddCommand(newExtractCmd(), newServeCmd())
	return rootCmd
}
