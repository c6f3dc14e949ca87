package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/logger"
)

func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Default()

			database, err := db.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBMaxOpenConns)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			versions, err := database.AppliedMigrations(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			log.Info("database is up to date (%d migrations)", len(versions))
			return nil
		},
	}
}
