package migrations

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Existence probes over information_schema and pg_catalog. Migrations that
// add structures to a database that may already carry them (historical
// duplicate migration files, manual interventions) branch on these instead
// of failing on duplicate-object errors.

func tableExists(tx *gorm.DB, table string) (bool, error) {
	var count int64
	err := tx.Raw(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = ?
	`, table).Scan(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to probe table %s", table)
	}
	return count > 0, nil
}

func columnExists(tx *gorm.DB, table, column string) (bool, error) {
	var count int64
	err := tx.Raw(`
		SELECT COUNT(*)
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?
	`, table, column).Scan(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to probe column %s.%s", table, column)
	}
	return count > 0, nil
}

func constraintExists(tx *gorm.DB, table, constraint string) (bool, error) {
	var count int64
	err := tx.Raw(`
		SELECT COUNT(*)
		FROM information_schema.table_constraints
		WHERE table_schema = current_schema() AND table_name = ? AND constraint_name = ?
	`, table, constraint).Scan(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to probe constraint %s on %s", constraint, table)
	}
	return count > 0, nil
}

func indexExists(tx *gorm.DB, index string) (bool, error) {
	var count int64
	err := tx.Raw(`
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE schemaname = current_schema() AND indexname = ?
	`, index).Scan(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to probe index %s", index)
	}
	return count > 0, nil
}

func enumTypeExists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.Raw(`
		SELECT COUNT(*)
		FROM pg_type t
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE t.typtype = 'e' AND t.typname = ? AND n.nspname = current_schema()
	`, name).Scan(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "failed to probe enum type %s", name)
	}
	return count > 0, nil
}

// createEnumType creates a named enum type unless it already exists
func createEnumType(tx *gorm.DB, name string, ddl string) error {
	exists, err := enumTypeExists(tx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return errors.Wrapf(tx.Exec(ddl).Error, "failed to create enum type %s", name)
}

// addColumnIfMissing runs the ALTER TABLE only when the column is absent
func addColumnIfMissing(tx *gorm.DB, table, column, ddl string) error {
	exists, err := columnExists(tx, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return errors.Wrapf(tx.Exec(ddl).Error, "failed to add column %s.%s", table, column)
}

// dropColumnIfPresent runs the ALTER TABLE only when the column exists
func dropColumnIfPresent(tx *gorm.DB, table, column string) error {
	exists, err := columnExists(tx, table, column)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	err = tx.Exec(`ALTER TABLE ` + table + ` DROP COLUMN ` + column).Error
	return errors.Wrapf(err, "failed to drop column %s.%s", table, column)
}

// createIndexIfMissing runs the CREATE INDEX only when the index is absent
func createIndexIfMissing(tx *gorm.DB, index, ddl string) error {
	exists, err := indexExists(tx, index)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return errors.Wrapf(tx.Exec(ddl).Error, "failed to create index %s", index)
}

func execAll(tx *gorm.DB, stmts ...string) error {
	for _, stmt := range stmts {
		if err := tx.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "failed to execute %q", stmt)
		}
	}
	return nil
}
