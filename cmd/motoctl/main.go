// cmd/motoctl/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsvendas/motostock/internal/adapters/db"
	"github.com/wsvendas/motostock/internal/pkg/config"
	"github.com/wsvendas/motostock/internal/pkg/logger"
)

var (
	logLevel string
	cfg      *config.Config
	log      *slog.Logger
)

// rootCmd is the operator CLI for the inventory database
var rootCmd = &cobra.Command{
	Use:   "motoctl",
	Short: "Operate the motostock inventory database",
	Long: `motoctl runs schema migrations, seeds demo stock and moves the
inventory in and out of .xlsx spreadsheets. Connection settings come from
the same environment variables as the API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.SetupLogger(logLevel, "text").Logger

		loaded, err := config.Load(log)
		if err != nil {
			return err
		}
		if err := config.ApplySecrets(cmd.Context(), loaded, config.EnvSecretsManager{}); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd, seedCmd, importCmd, exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase connects with a small pool suited to one-shot commands
func openDatabase(ctx context.Context) (*db.Database, error) {
	return db.NewDatabase(ctx, &db.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: 2,
		MinConnections: 1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	}, log)
}
