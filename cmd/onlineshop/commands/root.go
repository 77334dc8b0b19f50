// Package commands holds the onlineshop command line.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thumbtack/onlineshop/internal/pkg/config"
	"github.com/thumbtack/onlineshop/pkg/logger"
)

var (
	dbURL    string
	logLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "onlineshop",
	Short: "Online shop backend",
	Long: `onlineshop serves the shop HTTP API and manages its relational schema.

Configuration is read from the environment (PORT, DATABASE_URL, REDIS_ADDR,
MONGO_URI and friends). Flags override the matching variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL, overrides DATABASE_URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides LOG_LEVEL")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig reads the environment, applies the persistent flags and
// initialises the logger.
func loadConfig(ctx context.Context) error {
	c, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if dbURL != "" {
		c.Database.URL = dbURL
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	cfg = c

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "onlineshop",
	})
	return nil
}
