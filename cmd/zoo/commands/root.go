package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zoo-admin/internal/platform/config"
	"zoo-admin/internal/platform/logger"
)

// Flags globales
var configPath string

// buildVersion se reporta en los spans (service.version).
var buildVersion = "dev"

// Execute corre el comando raíz.
func Execute(ctx context.Context, version, commit string) error {
	return newRootCommand(version, commit).ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	if version != "" {
		buildVersion = version
	}
	rootCmd := &cobra.Command{
		Use:   "zoo",
		Short: "zoo-admin - administración de animales, recintos y categorías",
		Long: `zoo-admin expone una API HTTP para administrar los animales del zoo,
sus recintos y categorías, y una vista de estado que indica qué animales
están activos y cuáles están comiendo a una hora dada.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (YAML)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newBackupCommand())

	return rootCmd
}

// loadConfig carga la config y arma el logger a partir de ella.
func loadConfig() (config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	return cfg, log, nil
}
