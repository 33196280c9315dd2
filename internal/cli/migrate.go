package cli

import (
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := dbpkg.Migrate(db, cfg.DefaultTimezone); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}
