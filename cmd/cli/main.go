// Package main implements the mflix CLI for looking up movies from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dsjohal14/mflix/internal/libs/config"
	"github.com/dsjohal14/mflix/internal/libs/obs"
	"github.com/dsjohal14/mflix/internal/scope/db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// storeOpener opens the configured movie store
type storeOpener func(ctx context.Context) (db.MovieFinder, error)

func openFromEnv(ctx context.Context) (db.MovieFinder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	obs.InitLogger(cfg.LogLevel)
	return db.Open(ctx, cfg)
}

func main() {
	logger := obs.LoggerTo(os.Stderr, "cli")
	if err := newRootCmd(openFromEnv, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open storeOpener, logger zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "mflix",
		Short:        "mflix movie catalog CLI",
		SilenceUsage: true,
	}
	root.AddCommand(newGetCmd(open, logger), newMigrateCmd(open))
	return root
}

func newGetCmd(open storeOpener, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a movie by its 24 character hex id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := db.ParseID(args[0])
			if err != nil {
				return errors.New("Invalid movie ID format")
			}

			ctx := cmd.Context()
			store, err := open(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("failed to open movie store")
				return errors.New("Internal server error")
			}
			defer func() { _ = store.Close(context.Background()) }()

			movie, err := store.FindByID(ctx, id)
			if errors.Is(err, db.ErrNotFound) {
				return errors.New("Movie not found")
			}
			if err != nil {
				logger.Error().Err(err).Str("id", id.Hex()).Msg("movie lookup failed")
				return errors.New("Internal server error")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(movie)
		},
	}
}

func newMigrateCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres movies table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(context.Background()) }()

			pg, ok := store.(*db.PostgresStore)
			if !ok {
				return fmt.Errorf("migrate requires STORE_BACKEND=%s", config.BackendPostgres)
			}
			if err := pg.Migrate(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "movies table ready")
			return nil
		},
	}
}
