package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/thumbtack/onlineshop/internal/infrastructure/db/sqlstore"
	"github.com/thumbtack/onlineshop/internal/infrastructure/db/sqlstore/migrations"
	"github.com/thumbtack/onlineshop/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the relational schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
			done, err := migrations.Up(ctx, db)
			for _, v := range done {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
			}
			if err != nil {
				return err
			}
			if len(done) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			}
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [n]",
	Short: "Roll back the last n migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v <= 0 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			n = v
		}
		return withDatabase(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
			undone, err := migrations.Down(ctx, db, n)
			for _, v := range undone {
				fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", v)
			}
			return err
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List registered migrations and when they were applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
			list, err := migrations.List(ctx, db)
			if err != nil {
				return err
			}
			for _, s := range list {
				applied := "pending"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %s\n", s.Version, s.Name, applied)
			}
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func withDatabase(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	db, err := sqlstore.Connect(ctx, sqlstore.Config{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Log:          logger.Get(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	return fn(ctx, db)
}
