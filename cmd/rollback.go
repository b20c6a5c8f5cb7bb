package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/crusher/internal/migrations"
)

var rollbackTo string

// rollbackCmd represents the rollback command
var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back database migrations",
	Long: `Rolls back the most recent migration, or with --to rolls back
every migration applied after the given id.`,
	RunE: runRollback,
}

func init() {
	rollbackCmd.Flags().StringVar(&rollbackTo, "to", "", "migration id to roll back to (exclusive)")
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy, err := migrations.ParsePolicy(cfg.Migration.Policy)
	if err != nil {
		return err
	}

	log.Info().Msg("Connecting to database...")
	db, gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	runner := migrations.NewRunner(gormDB, policy)

	if rollbackTo != "" {
		log.Info().Str("to", rollbackTo).Msg("Rolling back migrations...")
		if err := runner.RollbackTo(rollbackTo); err != nil {
			return err
		}
	} else {
		log.Info().Msg("Rolling back last migration...")
		if err := runner.RollbackLast(); err != nil {
			return err
		}
	}

	log.Info().Msg("Rollback completed successfully")
	return nil
}
