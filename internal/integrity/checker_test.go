package integrity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/backstage/services/crusher/internal/models"
)

func TestAuditActionSetCoversEveryAction(t *testing.T) {
	set := auditActionSet()

	for _, action := range models.AuditActions() {
		require.Contains(t, set, "'"+string(action)+"'")
	}
	// one quoted literal per action, comma separated
	require.Equal(t, len(models.AuditActions()), len(strings.Split(set, ", ")))
}

func TestReportClean(t *testing.T) {
	require.True(t, Report{}.Clean())
	require.False(t, Report{Findings: []Finding{{Check: "x"}}}.Clean())
}
