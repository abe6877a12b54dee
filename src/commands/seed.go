package commands

import (
	"bankweb/src/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, accounts and transactions into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			if file == "" {
				file = cfg.SeedFile
			}

			seed, err := store.LoadSeed(file)
			if err != nil {
				return err
			}
			st, closeStore, err := openStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Apply(cmd.Context(), st, seed, bcrypt.DefaultCost, logger); err != nil {
				return err
			}
			logger.Info("Seed data loaded", zap.Int("users", len(seed.Users)))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "seed fixture (defaults to SEED_FILE, then the built-in fixture)")

	return cmd
}
