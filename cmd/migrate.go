package cmd

import (
	"AdminBackend/config"
	"AdminBackend/logger"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE:  migrateCommand,
	}
}

func migrateCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := config.SetupDatabaseConnection(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db)

	if err := config.Migrate(db); err != nil {
		return err
	}
	logger.Log.Info("migrations applied")
	return nil
}
