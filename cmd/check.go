package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/crusher/internal/integrity"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run data integrity checks",
	Long: `Sweeps the database for conditions the schema constraints cannot
express on legacy data: duplicate material names, duplicate GST numbers,
runs missing input quantities and orphaned references. Exits non-zero
when findings exist.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	log.Info().Msg("Running integrity checks...")
	report, err := integrity.NewChecker(gormDB).Check(context.Background())
	if err != nil {
		return err
	}

	if report.Clean() {
		log.Info().Msg("All integrity checks passed")
		return nil
	}

	for _, finding := range report.Findings {
		log.Warn().
			Str("check", finding.Check).
			Str("table", finding.Table).
			Uints("rowIds", finding.RowIDs).
			Msg(finding.Detail)
	}
	return errors.Errorf("%d integrity finding(s)", len(report.Findings))
}
