package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/crusher/internal/seed"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load bootstrap data",
	Long: `Loads the bootstrap data the service expects: the primary crusher
machine, the admin user and sample master data. Safe to run repeatedly;
steps that already exist are skipped.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Info().Msg("Connecting to database...")
	db, gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Msg("Loading bootstrap data...")
	if err := seed.Run(gormDB, cfg.Seed); err != nil {
		return err
	}

	log.Info().Msg("Bootstrap data loaded successfully")
	return nil
}
