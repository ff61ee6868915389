package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/models"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/output"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/report"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/store"
)

type extractOptions struct {
	outputPath  string
	pretty      bool
	format      string
	style       string
	save        bool
	databaseURL string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract a portfolio statement and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json or report")
	cmd.Flags().StringVar(&opts.style, "style", "", "Report style (dark, light, notty, ascii); auto-detected when empty")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the portfolio to the database")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (default: $DATABASE_URL)")
	return cmd
}

func runExtract(ctx context.Context, opts *extractOptions, inputPath string) error {
	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if opts.format != "json" && opts.format != "report" {
		return fmt.Errorf("invalid format: %s (must be json or report)", opts.format)
	}

	result, err := pfstruct.Extract(inputPath)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	log.Debug().Int("holdings", len(result.Holdings)).Str("file", inputPath).Msg("Extracted portfolio")

	if opts.save {
		if err := savePortfolio(ctx, opts, result); err != nil {
			return err
		}
	}

	data, err := render(opts, result)
	if err != nil {
		return err
	}

	// Write output
	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}

func render(opts *extractOptions, result *models.Result) ([]byte, error) {
	if opts.format == "json" {
		data, err := output.ToJSON(result, opts.pretty)
		if err != nil {
			return nil, fmt.Errorf("serialization failed: %w", err)
		}
		return data, nil
	}

	md, err := report.Markdown(result)
	if err != nil {
		return nil, err
	}
	// Files get plain markdown, terminals get the rendered form.
	if opts.outputPath != "" {
		return []byte(md), nil
	}
	out, err := report.Terminal(md, opts.style, 120)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return []byte(out), nil
}

func savePortfolio(ctx context.Context, opts *extractOptions, result *models.Result) error {
	databaseURL := opts.databaseURL
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL == "" {
		return fmt.Errorf("--save requires --database-url or DATABASE_URL")
	}

	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := store.NewPostgres(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := pfstruct.Persist(ctx, repo, result, true, time.Now().In(pfstruct.IST)); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	log.Info().Int("holdings", len(result.Holdings)).Msg("Saved portfolio")
	return nil
}
