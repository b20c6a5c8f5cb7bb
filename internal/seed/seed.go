package seed

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/config"
	"example.com/backstage/services/crusher/internal/models"
)

// Step is one idempotent seeding unit. Exists reports whether target rows
// are already present; Run only executes when they are not, so re-running
// the full sequence against a populated database is a no-op.
type Step struct {
	Name   string
	Exists func(tx *gorm.DB) (bool, error)
	Run    func(tx *gorm.DB) error
}

// Steps returns the ordered bootstrap sequence: the default machine, the
// initial SUPER_ADMIN user, and sample master data. Role and status values
// come from the typed enum constants so a drifted literal cannot slip into
// an insert.
func Steps(cfg config.SeedConfig) []Step {
	return []Step{
		defaultMachine(),
		adminUser(cfg),
		sampleMaterials(),
		sampleCustomers(),
		sampleVendors(),
	}
}

// Run executes every step, skipping those whose rows already exist
func Run(db *gorm.DB, cfg config.SeedConfig) error {
	for _, step := range Steps(cfg) {
		applied, err := runStep(db, step)
		if err != nil {
			return err
		}
		if applied {
			log.Info().Str("step", step.Name).Msg("Seed step applied")
		} else {
			log.Info().Str("step", step.Name).Msg("Seed step skipped, rows already present")
		}
	}
	return nil
}

func runStep(db *gorm.DB, step Step) (bool, error) {
	exists, err := step.Exists(db)
	if err != nil {
		return false, errors.Wrapf(err, "seed step %s existence check failed", step.Name)
	}
	if exists {
		return false, nil
	}
	if err := step.Run(db); err != nil {
		return false, errors.Wrapf(err, "seed step %s failed", step.Name)
	}
	return true, nil
}

func defaultMachine() Step {
	return Step{
		Name: "default-crusher-machine",
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.CrusherMachine{}).Count(&count).Error
			return count > 0, err
		},
		Run: func(tx *gorm.DB) error {
			machine := models.CrusherMachine{
				Name:   "Primary Crusher",
				Status: models.MachineStatusActive,
			}
			return tx.Create(&machine).Error
		},
	}
}

func adminUser(cfg config.SeedConfig) Step {
	return Step{
		Name: "super-admin-user",
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.User{}).
				Where("role = ?", models.UserRoleSuperAdmin).
				Count(&count).Error
			return count > 0, err
		},
		Run: func(tx *gorm.DB) error {
			user := models.User{
				Email:  cfg.AdminEmail,
				Name:   cfg.AdminName,
				Role:   models.UserRoleSuperAdmin,
				Active: true,
			}
			return tx.Create(&user).Error
		},
	}
}

func sampleMaterials() Step {
	materials := []models.Material{
		{Name: "Dust", Unit: "Ton"},
		{Name: "20mm Metal", Unit: "Ton"},
		{Name: "40mm Metal", Unit: "Ton"},
		{Name: "GSB", Unit: "Ton"},
	}
	return Step{
		Name: "sample-materials",
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.Material{}).Count(&count).Error
			return count > 0, err
		},
		Run: func(tx *gorm.DB) error {
			return tx.Create(&materials).Error
		},
	}
}

func sampleCustomers() Step {
	gst := "27AAPFU0939F1ZV"
	customers := []models.Customer{
		{Name: "Shree Constructions", GSTNumber: &gst, Contact: "9822000001"},
		{Name: "Highway Infra Works", Contact: "9822000002"},
	}
	return Step{
		Name: "sample-customers",
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.Customer{}).Count(&count).Error
			return count > 0, err
		},
		Run: func(tx *gorm.DB) error {
			return tx.Create(&customers).Error
		},
	}
}

func sampleVendors() Step {
	gst := "27AADCB2230M1Z2"
	vendors := []models.Vendor{
		{Name: "Patil Blasting Services", GSTNumber: &gst, Contact: "9822000003"},
		{Name: "Deccan Diesel Supply", Contact: "9822000004"},
	}
	return Step{
		Name: "sample-vendors",
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.Vendor{}).Count(&count).Error
			return count > 0, err
		},
		Run: func(tx *gorm.DB) error {
			return tx.Create(&vendors).Error
		},
	}
}
