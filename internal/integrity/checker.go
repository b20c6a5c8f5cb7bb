package integrity

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// Finding is one integrity violation discovered by a sweep
type Finding struct {
	Check   string `json:"check"`
	Table   string `json:"table"`
	Detail  string `json:"detail"`
	RowIDs  []uint `json:"rowIds,omitempty"`
}

// Report collects the findings of one sweep
type Report struct {
	Findings []Finding `json:"findings"`
}

// Clean reports whether the sweep found nothing
func (r Report) Clean() bool {
	return len(r.Findings) == 0
}

// Checker runs read-only consistency sweeps over the schema. The database
// constraints prevent these states going forward; the checker exists to
// surface rows that predate a constraint or were written around it.
type Checker struct {
	db *gorm.DB
}

// NewChecker creates a checker over the given database
func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Check runs every sweep and returns the combined report
func (c *Checker) Check(ctx context.Context) (Report, error) {
	var report Report

	sweeps := []func(context.Context) ([]Finding, error){
		c.duplicateMaterialNames,
		c.duplicateGSTNumbers,
		c.runsMissingInputQty,
		c.orphanedDispatches,
		c.orphanedOrderItems,
		c.invalidAuditActions,
	}
	for _, sweep := range sweeps {
		findings, err := sweep(ctx)
		if err != nil {
			return Report{}, err
		}
		report.Findings = append(report.Findings, findings...)
	}
	return report, nil
}

func (c *Checker) duplicateMaterialNames(ctx context.Context) ([]Finding, error) {
	var rows []KeyedRow
	err := c.db.WithContext(ctx).Raw(
		`SELECT id, name AS key FROM materials ORDER BY id ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan material names")
	}

	var findings []Finding
	for name, ids := range DuplicateGroups(rows) {
		findings = append(findings, Finding{
			Check:  "duplicate-material-name",
			Table:  "materials",
			Detail: fmt.Sprintf("material name %q appears %d times", name, len(ids)),
			RowIDs: ids,
		})
	}
	return findings, nil
}

func (c *Checker) duplicateGSTNumbers(ctx context.Context) ([]Finding, error) {
	var findings []Finding
	for _, table := range []string{"customers", "vendors"} {
		var rows []KeyedRow
		err := c.db.WithContext(ctx).Raw(
			`SELECT id, gst_number AS key FROM ` + table + ` WHERE gst_number IS NOT NULL ORDER BY id ASC`,
		).Scan(&rows).Error
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s GST numbers", table)
		}
		for gst, ids := range DuplicateGroups(rows) {
			findings = append(findings, Finding{
				Check:  "duplicate-gst-number",
				Table:  table,
				Detail: fmt.Sprintf("GST number %q appears %d times", gst, len(ids)),
				RowIDs: ids,
			})
		}
	}
	return findings, nil
}

func (c *Checker) runsMissingInputQty(ctx context.Context) ([]Finding, error) {
	var ids []uint
	err := c.db.WithContext(ctx).Raw(
		`SELECT id FROM crusher_runs WHERE input_qty IS NULL ORDER BY id ASC`,
	).Scan(&ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan crusher runs for missing input quantity")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return []Finding{{
		Check:  "run-missing-input-qty",
		Table:  "crusher_runs",
		Detail: fmt.Sprintf("%d runs have no input quantity", len(ids)),
		RowIDs: ids,
	}}, nil
}

func (c *Checker) orphanedDispatches(ctx context.Context) ([]Finding, error) {
	var ids []uint
	err := c.db.WithContext(ctx).Raw(`
		SELECT d.id FROM dispatches d
		LEFT JOIN crusher_runs r ON r.id = d.crusher_run_id
		WHERE r.id IS NULL
		ORDER BY d.id ASC
	`).Scan(&ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan dispatches for missing runs")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return []Finding{{
		Check:  "dispatch-missing-run",
		Table:  "dispatches",
		Detail: fmt.Sprintf("%d dispatches reference a missing crusher run", len(ids)),
		RowIDs: ids,
	}}, nil
}

func (c *Checker) orphanedOrderItems(ctx context.Context) ([]Finding, error) {
	var ids []uint
	err := c.db.WithContext(ctx).Raw(`
		SELECT i.id FROM sales_order_items i
		LEFT JOIN sales_orders o ON o.id = i.sales_order_id
		LEFT JOIN materials m ON m.id = i.material_id
		WHERE o.id IS NULL OR m.id IS NULL
		ORDER BY i.id ASC
	`).Scan(&ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan sales order items for missing parents")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return []Finding{{
		Check:  "order-item-missing-parent",
		Table:  "sales_order_items",
		Detail: fmt.Sprintf("%d order items reference a missing order or material", len(ids)),
		RowIDs: ids,
	}}, nil
}

func (c *Checker) invalidAuditActions(ctx context.Context) ([]Finding, error) {
	var ids []uint
	err := c.db.WithContext(ctx).Raw(
		`SELECT id FROM user_audit_logs WHERE action::text NOT IN (` + auditActionSet() + `) ORDER BY id ASC`,
	).Scan(&ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan audit logs for invalid actions")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return []Finding{{
		Check:  "audit-action-outside-enum",
		Table:  "user_audit_logs",
		Detail: fmt.Sprintf("%d audit entries carry an action outside the known set", len(ids)),
		RowIDs: ids,
	}}, nil
}

// auditActionSet renders the closed action set as a SQL IN-list, so the sweep
// cannot drift from the application's constants
func auditActionSet() string {
	actions := models.AuditActions()
	quoted := make([]string, len(actions))
	for i, a := range actions {
		quoted[i] = "'" + string(a) + "'"
	}
	return strings.Join(quoted, ", ")
}
