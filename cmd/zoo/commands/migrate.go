package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zoo-admin/internal/adapters/storage/postgres"
	"zoo-admin/internal/platform/config"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Aplica las migraciones SQL embebidas a Postgres",
		Long: `Aplica (up, por defecto) o revierte (down) las migraciones de Postgres.
SQLite crea su esquema solo al abrir la base; memoria no necesita migrar.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := postgres.Up
			if len(args) == 1 {
				switch postgres.Direction(args[0]) {
				case postgres.Up, postgres.Down:
					dir = postgres.Direction(args[0])
				default:
					return fmt.Errorf("unknown direction %q (want up or down)", args[0])
				}
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.DriverPostgres {
				return errors.New("migrate needs storage.driver=postgres (or DB_DSN)")
			}

			db, err := postgres.Open(cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()

			if err := postgres.Migrate(db, dir); err != nil {
				return err
			}
			log.Info("migrations applied", map[string]any{"direction": string(dir)})
			return nil
		},
	}
}
