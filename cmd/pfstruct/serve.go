package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pfstruct-go/internal/server"
	"github.com/ukaji3/pfstruct-go/internal/staging"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct"
	"github.com/ukaji3/pfstruct-go/pkg/pfstruct/store"
)

func newServeCmd() *cobra.Command {
	var addr, databaseURL, uploadDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio analysis endpoint over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("database-url") {
				cfg.DatabaseURL = databaseURL
			}
			if cmd.Flags().Changed("upload-dir") {
				cfg.UploadDir = uploadDir
			}
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $PFSTRUCT_ADDR or :8000)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (default: $DATABASE_URL)")
	cmd.Flags().StringVar(&uploadDir, "upload-dir", "", "Directory for staged uploads (default: $UPLOAD_DIR or the OS temp dir)")
	return cmd
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo pfstruct.Repository
	if cfg.DatabaseURL != "" {
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		pg := store.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		repo = pg
		log.Info().Msg("Persisting portfolios to PostgreSQL")
	} else {
		repo = store.NewMemory()
		log.Warn().Msg("DATABASE_URL not set; saved portfolios are kept in memory only")
	}

	h := server.NewHandler(repo, staging.Area{Dir: cfg.UploadDir}, cfg.MaxUploadMB<<20)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
