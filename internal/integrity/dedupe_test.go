package integrity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuplicateIDsKeepsLowestID(t *testing.T) {
	rows := []KeyedRow{
		{ID: 7, Key: "Dust"},
		{ID: 3, Key: "Dust"},
		{ID: 5, Key: "20mm Metal"},
		{ID: 9, Key: "Dust"},
	}

	// id 3 is the survivor for "Dust" regardless of input order
	require.Equal(t, []uint{7, 9}, DuplicateIDs(rows))
}

func TestDuplicateIDsNoDuplicates(t *testing.T) {
	rows := []KeyedRow{
		{ID: 1, Key: "Dust"},
		{ID: 2, Key: "GSB"},
	}
	require.Empty(t, DuplicateIDs(rows))
	require.Empty(t, DuplicateIDs(nil))
}

func TestDuplicateIDsDistinctKeysUntouched(t *testing.T) {
	rows := []KeyedRow{
		{ID: 4, Key: "a"},
		{ID: 2, Key: "b"},
		{ID: 1, Key: "a"},
		{ID: 3, Key: "b"},
		{ID: 5, Key: "c"},
	}
	require.Equal(t, []uint{3, 4}, DuplicateIDs(rows))
}

func TestDuplicateGroups(t *testing.T) {
	rows := []KeyedRow{
		{ID: 7, Key: "Dust"},
		{ID: 3, Key: "Dust"},
		{ID: 5, Key: "20mm Metal"},
		{ID: 9, Key: "Dust"},
	}

	groups := DuplicateGroups(rows)
	require.Len(t, groups, 1)
	require.Equal(t, []uint{3, 7, 9}, groups["Dust"])
}
