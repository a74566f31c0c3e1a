package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mindcoach/internal/config"
	"mindcoach/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "coachctl",
	Short: "Mind Coach operator tool",
	Long: `Operator tool for the Mind Coach server.

Reads the same environment variables as the server (DB_TYPE, DB_PATH,
DATABASE_URL, CATALOG_PATH, SES_FROM_EMAIL, ...), including a .env file.`,
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openDatabase loads config, connects and brings the schema up to date
func openDatabase(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if cfg.Debug {
		log.Printf("[DEBUG] Connected to %s database", cfg.DatabaseType)
	}
	return cfg, db, nil
}
