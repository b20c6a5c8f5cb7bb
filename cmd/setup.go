package cmd

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/config"
	"example.com/backstage/services/crusher/internal/database"
)

// loadConfig reads configuration from the --config directory
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// openDatabase connects and hands back both the managed handle and the
// underlying gorm handle. Callers are responsible for Close.
func openDatabase(cfg config.Config) (database.DB, *gorm.DB, error) {
	db, err := database.Connect(cfg.DB)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}
	gormDB, err := db.DB()
	if err != nil {
		_ = db.Close()
		return nil, nil, errors.Wrap(err, "failed to get database handle")
	}
	return db, gormDB, nil
}
