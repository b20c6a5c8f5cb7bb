package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/backstage/services/crusher/internal/integrity"
	"example.com/backstage/services/crusher/internal/repositories"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker running the periodic integrity sweep and audit log retention pruning`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Create an error group to manage goroutines
	g, ctx := errgroup.WithContext(ctx)

	db, gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	checker := integrity.NewChecker(gormDB)
	auditRepo := repositories.NewAuditLogRepository(gormDB)

	g.Go(func() error {
		log.Info().
			Dur("interval", cfg.Worker.IntegritySweepInterval).
			Msg("Starting integrity sweep job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.IntegritySweepInterval),
			gocron.NewTask(func() {
				report, err := checker.Check(ctx)
				if err != nil {
					log.Error().Err(err).Msg("Integrity sweep failed")
					return
				}
				if report.Clean() {
					log.Info().Msg("Integrity sweep clean")
					return
				}
				for _, finding := range report.Findings {
					log.Warn().
						Str("check", finding.Check).
						Str("table", finding.Table).
						Uints("rowIds", finding.RowIDs).
						Msg(finding.Detail)
				}
			}),
		)
		if err != nil {
			return err
		}

		scheduler.Start()
		<-ctx.Done()
		return scheduler.Shutdown()
	})

	g.Go(func() error {
		log.Info().
			Int("retentionDays", cfg.Worker.AuditRetentionDays).
			Dur("interval", cfg.Worker.AuditPruneInterval).
			Msg("Starting audit log pruning job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.AuditPruneInterval),
			gocron.NewTask(func() {
				cutoff := time.Now().AddDate(0, 0, -cfg.Worker.AuditRetentionDays)
				pruned, err := auditRepo.PruneOlderThan(ctx, cutoff)
				if err != nil {
					log.Error().Err(err).Msg("Failed to prune audit logs")
					return
				}
				if pruned > 0 {
					log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Pruned audit logs")
				}
			}),
		)
		if err != nil {
			return err
		}

		scheduler.Start()
		<-ctx.Done()
		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shut down successfully")
	return nil
}
