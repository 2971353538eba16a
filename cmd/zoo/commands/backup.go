package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zoo-admin/internal/adapters/blob/fs"
	"zoo-admin/internal/adapters/blob/s3"
	"zoo-admin/internal/domain/animals"
	"zoo-admin/internal/domain/backup"
	"zoo-admin/internal/domain/categories"
	"zoo-admin/internal/domain/enclosures"
	"zoo-admin/internal/platform/config"
	"zoo-admin/internal/platform/logger"
)

func newBackupCommand() *cobra.Command {
	var (
		dir    string
		bucket string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Exporta recintos, categorías y animales a un JSON (directorio local o S3)",
		Example: `  # a ./backups
  zoo backup

  # a un bucket (credenciales por la cadena estándar de AWS)
  zoo backup --s3-bucket zoo-backups --s3-prefix nightly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Backup.Dir = dir
			}
			if cmd.Flags().Changed("s3-bucket") {
				cfg.Backup.S3Bucket = bucket
			}
			if cmd.Flags().Changed("s3-prefix") {
				cfg.Backup.S3Prefix = prefix
			}
			return runBackup(cmd.Context(), cfg, log, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "local directory for the backup file")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "upload to this S3 bucket instead of a local directory")
	cmd.Flags().StringVar(&prefix, "s3-prefix", "", "object key prefix inside the bucket")

	return cmd
}

func runBackup(ctx context.Context, cfg config.Config, log logger.Logger, out io.Writer) error {
	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing store failed", map[string]any{"error": err})
		}
	}()

	sink, where, err := openSink(ctx, cfg.Backup)
	if err != nil {
		return err
	}

	enclosuresSvc := enclosures.NewService(store.Enclosures())
	categoriesSvc := categories.NewService(store.Categories())
	animalsSvc := animals.NewService(store.Animals(), enclosuresSvc, categoriesSvc)

	res, err := backup.NewService(animalsSvc, enclosuresSvc, categoriesSvc, nil).Run(ctx, sink)
	if err != nil {
		return err
	}

	log.Info("backup written", map[string]any{
		"key":        res.Key,
		"bytes":      res.Bytes,
		"animals":    res.Animals,
		"enclosures": res.Enclosures,
		"categories": res.Categories,
	})
	_, err = fmt.Fprintf(out, "%s/%s\n", where, res.Key)
	return err
}

// openSink elige S3 si hay bucket; si no, el directorio local.
// where es el prefijo que se imprime delante de la key.
func openSink(ctx context.Context, cfg config.BackupConfig) (backup.Sink, string, error) {
	if cfg.S3Bucket != "" {
		sink, err := s3.NewSink(ctx, s3.Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, "", err
		}
		where := "s3://" + sink.Bucket()
		if p := sink.ObjectKey(""); p != "" {
			where += "/" + p
		}
		return sink, where, nil
	}

	sink, err := fs.NewSink(cfg.Dir)
	if err != nil {
		return nil, "", err
	}
	return sink, sink.Dir(), nil
}
