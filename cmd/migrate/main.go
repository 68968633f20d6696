package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply and inspect blog database migrations",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "overall timeout for database work")

	cmd.AddCommand(newUpCmd(&timeout), newStatusCmd(&timeout))
	return cmd
}

func newUpCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), *timeout, func(ctx context.Context, db *database.PostgresDB) error {
				ran, err := db.Migrate(ctx)
				if err != nil {
					return err
				}
				if len(ran) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
					return nil
				}
				for _, v := range ran {
					fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
				}
				return nil
			})
		},
	}
}

func newStatusCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether each has been applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), *timeout, func(ctx context.Context, db *database.PostgresDB) error {
				applied, err := db.AppliedMigrations(ctx)
				if err != nil {
					return err
				}
				migrations, err := database.Migrations()
				if err != nil {
					return err
				}
				return printStatus(cmd.OutOrStdout(), migrations, applied)
			})
		},
	}
}

func withDB(parent context.Context, timeout time.Duration, fn func(context.Context, *database.PostgresDB) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return err
	}
	defer db.Close()

	if err := fn(ctx, db); err != nil {
		log.Error().Err(err).Msg("migration command failed")
		return err
	}
	return nil
}

func printStatus(w io.Writer, migrations []database.Migration, applied map[string]bool) error {
	for _, m := range migrations {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", state, m.Version); err != nil {
			return err
		}
	}
	return nil
}
