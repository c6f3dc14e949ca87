package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/logger"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:           "birdguide",
		Short:         "BirdGuide species directory and flashcard API",
		SilenceUsage:  true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		setupLogger(cfg)
		return nil
	}

	rootCmd.AddCommand(serveCommand(&cfg), migrateCommand(&cfg))
	return rootCmd
}

func setupLogger(cfg config.Config) *logger.Logger {
	format := logger.ParseFormat(cfg.LogFormat)
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(format),
		logger.WithColors(format == logger.FormatText),
	)
	logger.SetDefault(log)
	return log
}
