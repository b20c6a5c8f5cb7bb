package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const trackingTable = "schema_migrations"

// Runner applies the ordered migration sequence against a database,
// recording applied ids in the tracking table. Migrations run sequentially
// as a one-shot administrative process; each migration is its own
// transaction.
type Runner struct {
	db       *gorm.DB
	migrator *gormigrate.Gormigrate
	ids      []string
}

// NewRunner builds a runner over the full migration list
func NewRunner(db *gorm.DB, policy Policy) *Runner {
	opts := &gormigrate.Options{
		TableName:      trackingTable,
		IDColumnName:   "id",
		IDColumnSize:   255,
		UseTransaction: true,
	}
	list := List(policy)
	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	return &Runner{
		db:       db,
		migrator: gormigrate.New(db, opts, list),
		ids:      ids,
	}
}

// Migrate applies every pending migration in order
func (r *Runner) Migrate() error {
	log.Info().Int("migrations", len(r.ids)).Msg("Applying schema migrations")
	if err := r.migrator.Migrate(); err != nil {
		return errors.Wrap(err, "migration failed")
	}
	log.Info().Msg("Schema migrations applied")
	return nil
}

// MigrateTo applies pending migrations up to and including the given id
func (r *Runner) MigrateTo(id string) error {
	if !r.knows(id) {
		return errors.Errorf("unknown migration id %q", id)
	}
	log.Info().Str("target", id).Msg("Applying schema migrations up to target")
	if err := r.migrator.MigrateTo(id); err != nil {
		return errors.Wrapf(err, "migration to %s failed", id)
	}
	return nil
}

// RollbackLast reverts the most recently applied migration
func (r *Runner) RollbackLast() error {
	log.Info().Msg("Rolling back last migration")
	if err := r.migrator.RollbackLast(); err != nil {
		return errors.Wrap(err, "rollback failed")
	}
	return nil
}

// RollbackTo reverts applied migrations newer than the given id
func (r *Runner) RollbackTo(id string) error {
	if !r.knows(id) {
		return errors.Errorf("unknown migration id %q", id)
	}
	log.Info().Str("target", id).Msg("Rolling back migrations newer than target")
	if err := r.migrator.RollbackTo(id); err != nil {
		return errors.Wrapf(err, "rollback to %s failed", id)
	}
	return nil
}

// IDs returns the ordered migration ids the runner knows about
func (r *Runner) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func (r *Runner) knows(id string) bool {
	for _, known := range r.ids {
		if known == id {
			return true
		}
	}
	return false
}
