package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"example.com/backstage/services/crusher/internal/api"
	"example.com/backstage/services/crusher/internal/cache"
	"example.com/backstage/services/crusher/internal/integrity"
	"example.com/backstage/services/crusher/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for crusher logistics operations`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, gormDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
	}

	svcs := api.Services{
		MasterData: services.NewMasterDataService(gormDB, redisCache),
		Crusher:    services.NewCrusherService(gormDB),
		Orders:     services.NewOrderService(gormDB),
		Dispatch:   services.NewDispatchService(gormDB),
		Users:      services.NewUserService(gormDB),
		Integrity:  integrity.NewChecker(gormDB),
	}

	server := api.NewServer(cfg, svcs)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	return nil
}
