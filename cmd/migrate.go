package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/crusher/internal/migrations"
)

var migrateTo string

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Runs the ordered database migrations to bring the schema
up-to-date. Use --to to stop after a specific migration id.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "migration id to stop at (inclusive)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
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

	log.Info().Str("policy", string(policy)).Msg("Running database migrations...")
	if migrateTo != "" {
		if err := runner.MigrateTo(migrateTo); err != nil {
			return err
		}
	} else {
		if err := runner.Migrate(); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}
