package repositories

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/crusher/internal/models"
)

func dispatchOn(runID uint, qty string) *models.Dispatch {
	return &models.Dispatch{CrusherRunID: runID, Quantity: decimal.RequireFromString(qty)}
}

func TestRunQtyAdjustmentsCreate(t *testing.T) {
	deltas := runQtyAdjustments(nil, dispatchOn(3, "35.735"))
	require.Len(t, deltas, 1)
	require.Equal(t, uint(3), deltas[0].runID)
	require.True(t, deltas[0].delta.Equal(decimal.RequireFromString("35.735")))
}

func TestRunQtyAdjustmentsDelete(t *testing.T) {
	// deleting a dispatch hands its quantity back to the run
	deltas := runQtyAdjustments(dispatchOn(3, "35.735"), nil)
	require.Len(t, deltas, 1)
	require.Equal(t, uint(3), deltas[0].runID)
	require.True(t, deltas[0].delta.Equal(decimal.RequireFromString("-35.735")))
}

func TestRunQtyAdjustmentsQuantityEdit(t *testing.T) {
	deltas := runQtyAdjustments(dispatchOn(3, "20"), dispatchOn(3, "25.5"))
	require.Len(t, deltas, 1)
	require.Equal(t, uint(3), deltas[0].runID)
	require.True(t, deltas[0].delta.Equal(decimal.RequireFromString("5.5")))

	// unchanged quantity leaves the run alone
	require.Empty(t, runQtyAdjustments(dispatchOn(3, "20"), dispatchOn(3, "20")))
}

func TestRunQtyAdjustmentsRunMove(t *testing.T) {
	deltas := runQtyAdjustments(dispatchOn(3, "20"), dispatchOn(7, "18"))
	require.Len(t, deltas, 2)
	require.Equal(t, uint(3), deltas[0].runID)
	require.True(t, deltas[0].delta.Equal(decimal.RequireFromString("-20")))
	require.Equal(t, uint(7), deltas[1].runID)
	require.True(t, deltas[1].delta.Equal(decimal.RequireFromString("18")))
}
