package migrations

import (
	"sort"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMigrationIDsUniqueAndOrdered(t *testing.T) {
	list := List(PolicyStrict)
	require.NotEmpty(t, list)

	seen := make(map[string]struct{}, len(list))
	var ids []string
	for _, m := range list {
		require.NotEmpty(t, m.ID)
		_, dup := seen[m.ID]
		require.False(t, dup, "duplicate migration id %s", m.ID)
		seen[m.ID] = struct{}{}
		ids = append(ids, m.ID)
	}

	// timestamp-prefixed ids must already be in chronological order
	require.True(t, sort.StringsAreSorted(ids), "migration ids out of order: %v", ids)
}

func TestEveryMigrationIsReversible(t *testing.T) {
	for _, m := range List(PolicyStrict) {
		require.NotNil(t, m.Migrate, "migration %s has no Migrate", m.ID)
		require.NotNil(t, m.Rollback, "migration %s has no Rollback", m.ID)
	}
}

func TestListIncludesNormalizationPhases(t *testing.T) {
	ids := make(map[string]bool)
	for _, m := range List(PolicyStrict) {
		ids[m.ID] = true
	}

	// the items table lands before the flat columns are dropped
	require.True(t, ids["202308011100_sales_order_items"])
	require.True(t, ids["202308151100_sales_order_drop_flat"])
	require.True(t, ids["202306010900_material_name_unique"])
	require.True(t, ids["202305101400_crusher_run_input_qty"])
	require.True(t, ids["202310051500_dispatch_order_fk_set_null"])
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("strict")
	require.NoError(t, err)
	require.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("best-effort")
	require.NoError(t, err)
	require.Equal(t, PolicyBestEffort, p)

	_, err = ParsePolicy("lenient")
	require.Error(t, err)

	_, err = ParsePolicy("")
	require.Error(t, err)
}

// fkAction pulls the ON DELETE action declared for a named constraint out
// of its DDL.
func fkAction(t *testing.T, ddl, constraint string) string {
	t.Helper()
	idx := strings.Index(ddl, constraint)
	require.GreaterOrEqual(t, idx, 0, "constraint %s not declared", constraint)
	clause := ddl[idx:]
	if end := strings.Index(clause, ",\n"); end >= 0 {
		clause = clause[:end]
	}
	actIdx := strings.Index(clause, "ON DELETE ")
	require.GreaterOrEqual(t, actIdx, 0, "constraint %s has no ON DELETE action", constraint)
	action := clause[actIdx+len("ON DELETE "):]
	if end := strings.IndexAny(action, "\n)"); end >= 0 {
		action = action[:end]
	}
	return strings.TrimSpace(action)
}

func TestSalesOrderItemFKActions(t *testing.T) {
	// line items die with their order; master data is never deleted from under them
	require.Equal(t, "CASCADE", fkAction(t, salesOrderItemsDDL, "fk_sales_order_items_order"))
	require.Equal(t, "RESTRICT", fkAction(t, salesOrderItemsDDL, "fk_sales_order_items_material"))
	require.Equal(t, "RESTRICT", fkAction(t, salesOrderItemsDDL, "fk_sales_order_items_site"))
}

func TestSiteMaterialFKActions(t *testing.T) {
	require.Equal(t, "CASCADE", fkAction(t, crusherSiteMaterialsDDL, "fk_site_materials_site"))
	require.Equal(t, "CASCADE", fkAction(t, crusherSiteMaterialsDDL, "fk_site_materials_material"))
}

func TestDispatchFKActions(t *testing.T) {
	require.Equal(t, "RESTRICT", fkAction(t, dispatchesDDL, "fk_dispatches_run"))
	require.Equal(t, "CASCADE", fkAction(t, dispatchesDDL, "fk_dispatches_sales_order"))
	require.Equal(t, "SET NULL", fkAction(t, dispatchesDDL, "fk_dispatches_purchase_order"))

	// the later migration relaxes the sales-order cascade, and its rollback restores it
	require.Equal(t, "SET NULL", fkAction(t, dispatchSalesOrderFKSetNull, "fk_dispatches_sales_order"))
	require.Equal(t, "CASCADE", fkAction(t, dispatchSalesOrderFKCascade, "fk_dispatches_sales_order"))
}

func TestNeedsBootstrapMachine(t *testing.T) {
	// legacy runs with no machine on record get one inserted
	require.True(t, needsBootstrapMachine(10, 0))

	// fresh database: the seed loader owns machine creation
	require.False(t, needsBootstrapMachine(0, 0))

	// machines already present are kept as-is
	require.False(t, needsBootstrapMachine(10, 3))
	require.False(t, needsBootstrapMachine(0, 3))
}

func TestApplyPolicy(t *testing.T) {
	boom := errors.New("copy failed")

	require.NoError(t, applyPolicy(PolicyStrict, "copy", nil))
	require.NoError(t, applyPolicy(PolicyBestEffort, "copy", nil))

	err := applyPolicy(PolicyStrict, "copy", boom)
	require.Error(t, err)
	require.ErrorIs(t, err, boom)

	// best-effort swallows the failure so schema steps can proceed
	require.NoError(t, applyPolicy(PolicyBestEffort, "copy", boom))
}
