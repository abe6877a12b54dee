package commands

import (
	"errors"

	"bankweb/src/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("DATABASE_URL is required")

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{db.MigrateUp, db.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := db.MigrateUp
			if len(args) > 0 {
				direction = args[0]
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}

			if err := db.Migrate(cfg.DatabaseURL, direction); err != nil {
				return err
			}
			logger.Info("Migrations complete", zap.String("direction", direction))
			return nil
		},
	}
}
