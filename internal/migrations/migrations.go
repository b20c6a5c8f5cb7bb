package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/integrity"
)

// List returns the full ordered migration sequence. The sequence is the
// schema's history: later migrations assume every earlier one succeeded, and
// several steps probe the catalog before acting so that re-running the suite
// against a hand-touched database does not fail on duplicate objects.
//
// The policy only governs the documented data-copy steps (the sales-order
// item backfill); all DDL fails hard.
func List(policy Policy) []*gormigrate.Migration {
	return []*gormigrate.Migration{
		initialSchema(),
		crusherMachines(),
		crusherRunMachine(),
		crusherRunInputQty(),
		materialNameUnique(),
		partyStructuredAddress(),
		partyGSTUnique(),
		salesOrderItems(policy),
		salesOrderDropFlatColumns(),
		crusherSiteMaterials(),
		dispatches(),
		dispatchOrderFKSetNull(),
		userAuditLogs(),
	}
}

// initialSchema creates the first-generation tables: master data, flat sales
// orders, purchase orders and users.
func initialSchema() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202303150900_initial_schema",
		Migrate: func(tx *gorm.DB) error {
			if err := createEnumType(tx, "purchase_order_status",
				`CREATE TYPE purchase_order_status AS ENUM ('PENDING', 'RECEIVED', 'PARTIAL')`); err != nil {
				return err
			}
			if err := createEnumType(tx, "user_role",
				`CREATE TYPE user_role AS ENUM ('SUPER_ADMIN', 'ADMIN', 'STAFF')`); err != nil {
				return err
			}
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS materials (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					unit VARCHAR(32) DEFAULT 'Ton',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS crusher_sites (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					owner TEXT,
					location TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS customers (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					gst_number TEXT,
					contact TEXT,
					address TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS vendors (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					gst_number TEXT,
					contact TEXT,
					address TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE IF NOT EXISTS crusher_runs (
					id BIGSERIAL PRIMARY KEY,
					material_id BIGINT NOT NULL,
					produced_qty NUMERIC(12,3) NOT NULL,
					dispatched_qty NUMERIC(12,3) NOT NULL DEFAULT 0,
					run_date DATE NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT fk_crusher_runs_material FOREIGN KEY (material_id)
						REFERENCES materials (id) ON DELETE RESTRICT
				)`,
				// First-generation sales orders carry a single flat
				// material/qty/rate triple. Normalized into line items by a
				// later migration.
				`CREATE TABLE IF NOT EXISTS sales_orders (
					id BIGSERIAL PRIMARY KEY,
					customer_id BIGINT NOT NULL,
					material_id BIGINT,
					quantity NUMERIC(12,3),
					rate NUMERIC(12,2),
					vehicle_no TEXT,
					order_date DATE NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT fk_sales_orders_customer FOREIGN KEY (customer_id)
						REFERENCES customers (id) ON DELETE RESTRICT,
					CONSTRAINT fk_sales_orders_material FOREIGN KEY (material_id)
						REFERENCES materials (id) ON DELETE RESTRICT
				)`,
				`CREATE TABLE IF NOT EXISTS purchase_orders (
					id BIGSERIAL PRIMARY KEY,
					vendor_id BIGINT NOT NULL,
					material_id BIGINT NOT NULL,
					quantity NUMERIC(12,3) NOT NULL,
					rate NUMERIC(12,2) NOT NULL,
					status purchase_order_status NOT NULL DEFAULT 'PENDING',
					order_date DATE NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT fk_purchase_orders_vendor FOREIGN KEY (vendor_id)
						REFERENCES vendors (id) ON DELETE RESTRICT,
					CONSTRAINT fk_purchase_orders_material FOREIGN KEY (material_id)
						REFERENCES materials (id) ON DELETE RESTRICT
				)`,
				`CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					email TEXT NOT NULL,
					name TEXT,
					role user_role NOT NULL DEFAULT 'STAFF',
					last_login_at TIMESTAMPTZ,
					active BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email)`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			if err := execAll(tx,
				`DROP TABLE IF EXISTS purchase_orders`,
				`DROP TABLE IF EXISTS sales_orders`,
				`DROP TABLE IF EXISTS crusher_runs`,
				`DROP TABLE IF EXISTS users`,
				`DROP TABLE IF EXISTS vendors`,
				`DROP TABLE IF EXISTS customers`,
				`DROP TABLE IF EXISTS crusher_sites`,
				`DROP TABLE IF EXISTS materials`,
			); err != nil {
				return err
			}
			return execAll(tx,
				`DROP TYPE IF EXISTS purchase_order_status`,
				`DROP TYPE IF EXISTS user_role`,
			)
		},
	}
}

// crusherMachines introduces machine tracking
func crusherMachines() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202304021130_crusher_machines",
		Migrate: func(tx *gorm.DB) error {
			if err := createEnumType(tx, "crusher_machine_status",
				`CREATE TYPE crusher_machine_status AS ENUM ('ACTIVE', 'INACTIVE', 'MAINTENANCE')`); err != nil {
				return err
			}
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS crusher_machines (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					status crusher_machine_status NOT NULL DEFAULT 'ACTIVE',
					last_maintenance_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			if err := execAll(tx, `DROP TABLE IF EXISTS crusher_machines`); err != nil {
				return err
			}
			return execAll(tx, `DROP TYPE IF EXISTS crusher_machine_status`)
		},
	}
}

// crusherRunMachine attributes every run to a machine. Rows that predate
// machine tracking fall back to the bootstrap machine (id 1), which the
// migration itself inserts when runs exist but no machine does, so the
// DEFAULT and the foreign key hold on legacy databases that never ran the
// seed loader.
func crusherRunMachine() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202304021200_crusher_run_machine",
		Migrate: func(tx *gorm.DB) error {
			var runCount, machineCount int64
			if err := tx.Raw(`SELECT COUNT(*) FROM crusher_runs`).Scan(&runCount).Error; err != nil {
				return errors.Wrap(err, "failed to count crusher_runs")
			}
			if err := tx.Raw(`SELECT COUNT(*) FROM crusher_machines`).Scan(&machineCount).Error; err != nil {
				return errors.Wrap(err, "failed to count crusher_machines")
			}
			if needsBootstrapMachine(runCount, machineCount) {
				log.Info().Int64("runs", runCount).Msg("Inserting bootstrap machine for pre-existing crusher runs")
				if err := tx.Exec(
					`INSERT INTO crusher_machines (name, status) VALUES ('Primary Crusher', 'ACTIVE')`,
				).Error; err != nil {
					return errors.Wrap(err, "failed to insert bootstrap machine")
				}
			}
			if err := addColumnIfMissing(tx, "crusher_runs", "machine_id",
				`ALTER TABLE crusher_runs ADD COLUMN machine_id BIGINT NOT NULL DEFAULT 1`); err != nil {
				return err
			}
			exists, err := constraintExists(tx, "crusher_runs", "fk_crusher_runs_machine")
			if err != nil {
				return err
			}
			if exists {
				return nil
			}
			return execAll(tx,
				`ALTER TABLE crusher_runs ADD CONSTRAINT fk_crusher_runs_machine
					FOREIGN KEY (machine_id) REFERENCES crusher_machines (id) ON DELETE RESTRICT`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			return dropColumnIfPresent(tx, "crusher_runs", "machine_id")
		},
	}
}

// needsBootstrapMachine reports whether the machine backfill has runs to
// attribute but no machine to attribute them to. A database with machines
// already on record keeps them; an empty database gets its first machine
// from the seed loader instead.
func needsBootstrapMachine(runCount, machineCount int64) bool {
	return runCount > 0 && machineCount == 0
}

// crusherRunInputQty adds the input-quantity column. The backfill must
// complete before the NOT NULL constraint is applied, or the constraint
// fails on pre-existing rows.
func crusherRunInputQty() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202305101400_crusher_run_input_qty",
		Migrate: func(tx *gorm.DB) error {
			if err := addColumnIfMissing(tx, "crusher_runs", "input_qty",
				`ALTER TABLE crusher_runs ADD COLUMN input_qty NUMERIC(12,3)`); err != nil {
				return err
			}
			if err := tx.Exec(
				`UPDATE crusher_runs SET input_qty = produced_qty WHERE input_qty IS NULL`,
			).Error; err != nil {
				return errors.Wrap(err, "failed to backfill crusher_runs.input_qty")
			}
			return execAll(tx, `ALTER TABLE crusher_runs ALTER COLUMN input_qty SET NOT NULL`)
		},
		Rollback: func(tx *gorm.DB) error {
			// Backfilled values are not recoverable once the column is gone.
			return dropColumnIfPresent(tx, "crusher_runs", "input_qty")
		},
	}
}

// materialNameUnique deduplicates material names (lowest id wins) and only
// then declares the unique constraint. Constraining first would fail in the
// presence of pre-existing duplicates.
func materialNameUnique() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202306010900_material_name_unique",
		Migrate: func(tx *gorm.DB) error {
			var rows []integrity.KeyedRow
			if err := tx.Raw(
				`SELECT id, name AS key FROM materials ORDER BY id ASC`,
			).Scan(&rows).Error; err != nil {
				return errors.Wrap(err, "failed to scan materials for dedup")
			}
			if dupes := integrity.DuplicateIDs(rows); len(dupes) > 0 {
				log.Info().Int("count", len(dupes)).Msg("Deleting duplicate materials before unique constraint")
				if err := tx.Exec(`DELETE FROM materials WHERE id IN ?`, dupes).Error; err != nil {
					return errors.Wrap(err, "failed to delete duplicate materials")
				}
			}
			return createIndexIfMissing(tx, "uq_materials_name",
				`CREATE UNIQUE INDEX uq_materials_name ON materials (name)`)
		},
		Rollback: func(tx *gorm.DB) error {
			// Merged duplicates stay merged.
			return execAll(tx, `DROP INDEX IF EXISTS uq_materials_name`)
		},
	}
}

// partyStructuredAddress adds the normalized address columns next to the
// legacy free-text address on customers and vendors.
func partyStructuredAddress() *gormigrate.Migration {
	columns := []struct{ name, sqlType string }{
		{"address_street", "TEXT"},
		{"address_city", "TEXT"},
		{"address_state", "TEXT"},
		{"address_pincode", "VARCHAR(16)"},
		{"address_maps_link", "TEXT"},
	}
	return &gormigrate.Migration{
		ID: "202306151000_party_structured_address",
		Migrate: func(tx *gorm.DB) error {
			for _, table := range []string{"customers", "vendors"} {
				for _, col := range columns {
					ddl := `ALTER TABLE ` + table + ` ADD COLUMN ` + col.name + ` ` + col.sqlType
					if err := addColumnIfMissing(tx, table, col.name, ddl); err != nil {
						return err
					}
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for _, table := range []string{"customers", "vendors"} {
				for _, col := range columns {
					if err := dropColumnIfPresent(tx, table, col.name); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

// partyGSTUnique enforces GST uniqueness per party table. Duplicate GST
// numbers beyond the first occurrence are cleared to NULL first so the
// constraint can be applied; NULLs stay legal.
func partyGSTUnique() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202307010900_party_gst_unique",
		Migrate: func(tx *gorm.DB) error {
			for _, table := range []string{"customers", "vendors"} {
				var rows []integrity.KeyedRow
				if err := tx.Raw(
					`SELECT id, gst_number AS key FROM ` + table + ` WHERE gst_number IS NOT NULL ORDER BY id ASC`,
				).Scan(&rows).Error; err != nil {
					return errors.Wrapf(err, "failed to scan %s for GST dedup", table)
				}
				if dupes := integrity.DuplicateIDs(rows); len(dupes) > 0 {
					log.Info().Str("table", table).Int("count", len(dupes)).
						Msg("Clearing duplicate GST numbers before unique constraint")
					if err := tx.Exec(
						`UPDATE `+table+` SET gst_number = NULL WHERE id IN ?`, dupes,
					).Error; err != nil {
						return errors.Wrapf(err, "failed to clear duplicate GST numbers on %s", table)
					}
				}
			}
			if err := createIndexIfMissing(tx, "uq_customers_gst",
				`CREATE UNIQUE INDEX uq_customers_gst ON customers (gst_number)`); err != nil {
				return err
			}
			return createIndexIfMissing(tx, "uq_vendors_gst",
				`CREATE UNIQUE INDEX uq_vendors_gst ON vendors (gst_number)`)
		},
		Rollback: func(tx *gorm.DB) error {
			return execAll(tx,
				`DROP INDEX IF EXISTS uq_customers_gst`,
				`DROP INDEX IF EXISTS uq_vendors_gst`,
			)
		},
	}
}

// Line items delete with their order; master data they point at is
// protected.
const salesOrderItemsDDL = `CREATE TABLE IF NOT EXISTS sales_order_items (
	id BIGSERIAL PRIMARY KEY,
	sales_order_id BIGINT NOT NULL,
	material_id BIGINT NOT NULL,
	crusher_site_id BIGINT,
	quantity NUMERIC(12,3) NOT NULL,
	rate NUMERIC(12,2) NOT NULL,
	unit VARCHAR(32) DEFAULT 'Ton',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT fk_sales_order_items_order FOREIGN KEY (sales_order_id)
		REFERENCES sales_orders (id) ON DELETE CASCADE,
	CONSTRAINT fk_sales_order_items_material FOREIGN KEY (material_id)
		REFERENCES materials (id) ON DELETE RESTRICT,
	CONSTRAINT fk_sales_order_items_site FOREIGN KEY (crusher_site_id)
		REFERENCES crusher_sites (id) ON DELETE RESTRICT
)`

// salesOrderItems is phase 1 of the sales-order normalization: new header
// columns, the line-item table, and a copy of every flat material/qty/rate
// triple into one item row. The destructive column removal is a separate,
// later migration so the copy step can be re-run and inspected on its own.
func salesOrderItems(policy Policy) *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202308011100_sales_order_items",
		Migrate: func(tx *gorm.DB) error {
			if err := addColumnIfMissing(tx, "sales_orders", "challan_no",
				`ALTER TABLE sales_orders ADD COLUMN challan_no TEXT`); err != nil {
				return err
			}
			if err := addColumnIfMissing(tx, "sales_orders", "address",
				`ALTER TABLE sales_orders ADD COLUMN address TEXT`); err != nil {
				return err
			}
			if err := execAll(tx, salesOrderItemsDDL); err != nil {
				return err
			}
			return applyPolicy(policy, "sales_order_items_copy", copyFlatSalesOrders(tx))
		},
		Rollback: func(tx *gorm.DB) error {
			if err := execAll(tx, `DROP TABLE IF EXISTS sales_order_items`); err != nil {
				return err
			}
			if err := dropColumnIfPresent(tx, "sales_orders", "challan_no"); err != nil {
				return err
			}
			return dropColumnIfPresent(tx, "sales_orders", "address")
		},
	}
}

// copyFlatSalesOrders moves each order's flat material/qty/rate into one
// line-item row. Idempotent: orders that already have items are skipped, and
// the whole step is skipped once the flat columns are gone.
func copyFlatSalesOrders(tx *gorm.DB) error {
	exists, err := columnExists(tx, "sales_orders", "material_id")
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	err = tx.Exec(`
		INSERT INTO sales_order_items (sales_order_id, material_id, quantity, rate, unit)
		SELECT o.id, o.material_id, COALESCE(o.quantity, 0), COALESCE(o.rate, 0), 'Ton'
		FROM sales_orders o
		WHERE o.material_id IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM sales_order_items i WHERE i.sales_order_id = o.id)
	`).Error
	return errors.Wrap(err, "failed to copy flat sales orders into items")
}

// salesOrderDropFlatColumns is phase 2 of the normalization: only after the
// copy has landed does the redundant flat shape go away.
func salesOrderDropFlatColumns() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202308151100_sales_order_drop_flat",
		Migrate: func(tx *gorm.DB) error {
			exists, err := constraintExists(tx, "sales_orders", "fk_sales_orders_material")
			if err != nil {
				return err
			}
			if exists {
				if err := execAll(tx,
					`ALTER TABLE sales_orders DROP CONSTRAINT fk_sales_orders_material`,
				); err != nil {
					return err
				}
			}
			for _, col := range []string{"material_id", "quantity", "rate"} {
				if err := dropColumnIfPresent(tx, "sales_orders", col); err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			// Restores the shape, not the data.
			if err := addColumnIfMissing(tx, "sales_orders", "material_id",
				`ALTER TABLE sales_orders ADD COLUMN material_id BIGINT REFERENCES materials (id) ON DELETE RESTRICT`); err != nil {
				return err
			}
			if err := addColumnIfMissing(tx, "sales_orders", "quantity",
				`ALTER TABLE sales_orders ADD COLUMN quantity NUMERIC(12,3)`); err != nil {
				return err
			}
			return addColumnIfMissing(tx, "sales_orders", "rate",
				`ALTER TABLE sales_orders ADD COLUMN rate NUMERIC(12,2)`)
		},
	}
}

// A link row is meaningless without either end, so both sides cascade.
const crusherSiteMaterialsDDL = `CREATE TABLE IF NOT EXISTS crusher_site_materials (
	id BIGSERIAL PRIMARY KEY,
	crusher_site_id BIGINT NOT NULL,
	material_id BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT uq_site_material UNIQUE (crusher_site_id, material_id),
	CONSTRAINT fk_site_materials_site FOREIGN KEY (crusher_site_id)
		REFERENCES crusher_sites (id) ON DELETE CASCADE,
	CONSTRAINT fk_site_materials_material FOREIGN KEY (material_id)
		REFERENCES materials (id) ON DELETE CASCADE
)`

// crusherSiteMaterials links sites to the materials they produce
func crusherSiteMaterials() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202309010900_crusher_site_materials",
		Migrate: func(tx *gorm.DB) error {
			return execAll(tx, crusherSiteMaterialsDDL)
		},
		Rollback: func(tx *gorm.DB) error {
			return execAll(tx, `DROP TABLE IF EXISTS crusher_site_materials`)
		},
	}
}

// A dispatch pins its source run; the sales-order cascade here is the
// original shipped behavior, relaxed to SET NULL by a later migration.
const dispatchesDDL = `CREATE TABLE IF NOT EXISTS dispatches (
	id BIGSERIAL PRIMARY KEY,
	crusher_run_id BIGINT NOT NULL,
	sales_order_id BIGINT,
	purchase_order_id BIGINT,
	dispatch_date DATE NOT NULL,
	quantity NUMERIC(12,3) NOT NULL,
	destination TEXT,
	vehicle_no TEXT,
	driver TEXT,
	pickup_qty NUMERIC(12,3),
	drop_qty NUMERIC(12,3),
	delivery_status dispatch_delivery_status NOT NULL DEFAULT 'PENDING',
	delivery_days INTEGER,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT fk_dispatches_run FOREIGN KEY (crusher_run_id)
		REFERENCES crusher_runs (id) ON DELETE RESTRICT,
	CONSTRAINT fk_dispatches_sales_order FOREIGN KEY (sales_order_id)
		REFERENCES sales_orders (id) ON DELETE CASCADE,
	CONSTRAINT fk_dispatches_purchase_order FOREIGN KEY (purchase_order_id)
		REFERENCES purchase_orders (id) ON DELETE SET NULL
)`

// dispatches creates the fulfillment table. As first shipped, deleting a
// sales order cascaded into its dispatches; a later migration relaxes that.
func dispatches() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202309151000_dispatches",
		Migrate: func(tx *gorm.DB) error {
			if err := createEnumType(tx, "dispatch_delivery_status",
				`CREATE TYPE dispatch_delivery_status AS ENUM ('PENDING', 'IN_TRANSIT', 'DELIVERED')`); err != nil {
				return err
			}
			return execAll(tx, dispatchesDDL)
		},
		Rollback: func(tx *gorm.DB) error {
			if err := execAll(tx, `DROP TABLE IF EXISTS dispatches`); err != nil {
				return err
			}
			return execAll(tx, `DROP TYPE IF EXISTS dispatch_delivery_status`)
		},
	}
}

const (
	dispatchSalesOrderFKSetNull = `ALTER TABLE dispatches ADD CONSTRAINT fk_dispatches_sales_order
		FOREIGN KEY (sales_order_id) REFERENCES sales_orders (id) ON DELETE SET NULL`
	dispatchSalesOrderFKCascade = `ALTER TABLE dispatches ADD CONSTRAINT fk_dispatches_sales_order
		FOREIGN KEY (sales_order_id) REFERENCES sales_orders (id) ON DELETE CASCADE`
)

// dispatchOrderFKSetNull settles the delete action on both order references:
// a dispatch records a physical shipment, so it outlives either order and
// merely becomes unassigned when one is deleted.
func dispatchOrderFKSetNull() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202310051500_dispatch_order_fk_set_null",
		Migrate: func(tx *gorm.DB) error {
			exists, err := constraintExists(tx, "dispatches", "fk_dispatches_sales_order")
			if err != nil {
				return err
			}
			if exists {
				if err := execAll(tx,
					`ALTER TABLE dispatches DROP CONSTRAINT fk_dispatches_sales_order`,
				); err != nil {
					return err
				}
			}
			return execAll(tx, dispatchSalesOrderFKSetNull)
		},
		Rollback: func(tx *gorm.DB) error {
			exists, err := constraintExists(tx, "dispatches", "fk_dispatches_sales_order")
			if err != nil {
				return err
			}
			if exists {
				if err := execAll(tx,
					`ALTER TABLE dispatches DROP CONSTRAINT fk_dispatches_sales_order`,
				); err != nil {
					return err
				}
			}
			return execAll(tx, dispatchSalesOrderFKCascade)
		},
	}
}

// userAuditLogs creates the append-only audit trail
func userAuditLogs() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202310201200_user_audit_logs",
		Migrate: func(tx *gorm.DB) error {
			if err := createEnumType(tx, "user_audit_action",
				`CREATE TYPE user_audit_action AS ENUM ('CREATE', 'UPDATE', 'DELETE', 'LOGIN', 'LOGOUT')`); err != nil {
				return err
			}
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS user_audit_logs (
					id BIGSERIAL PRIMARY KEY,
					user_id BIGINT,
					request_id UUID,
					action user_audit_action NOT NULL,
					entity_type TEXT NOT NULL,
					entity_id BIGINT,
					changes JSONB,
					ip_address TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT fk_user_audit_logs_user FOREIGN KEY (user_id)
						REFERENCES users (id) ON DELETE SET NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_user_audit_logs_entity ON user_audit_logs (entity_type, entity_id)`,
			)
		},
		Rollback: func(tx *gorm.DB) error {
			if err := execAll(tx, `DROP TABLE IF EXISTS user_audit_logs`); err != nil {
				return err
			}
			return execAll(tx, `DROP TYPE IF EXISTS user_audit_action`)
		},
	}
}
