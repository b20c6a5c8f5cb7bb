package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestTransitLoss(t *testing.T) {
	pickup := dec(t, "35.735")
	drop := dec(t, "35.203")
	d := Dispatch{PickupQty: &pickup, DropQty: &drop}

	loss, ok := d.TransitLoss()
	require.True(t, ok)
	require.True(t, loss.Equal(dec(t, "0.532")), "got %s", loss)
}

func TestTransitLossNegativeWhenDropExceedsPickup(t *testing.T) {
	pickup := dec(t, "35.203")
	drop := dec(t, "35.735")
	d := Dispatch{PickupQty: &pickup, DropQty: &drop}

	loss, ok := d.TransitLoss()
	require.True(t, ok)
	require.True(t, loss.Equal(dec(t, "-0.532")), "got %s", loss)
	require.True(t, loss.IsNegative())
}

func TestTransitLossUnknownWithoutBothWeights(t *testing.T) {
	pickup := dec(t, "35.735")

	_, ok := Dispatch{}.TransitLoss()
	require.False(t, ok)

	_, ok = Dispatch{PickupQty: &pickup}.TransitLoss()
	require.False(t, ok)

	_, ok = Dispatch{DropQty: &pickup}.TransitLoss()
	require.False(t, ok)
}

func TestCrusherRunRemainingQty(t *testing.T) {
	run := CrusherRun{
		ProducedQty:   dec(t, "120.500"),
		DispatchedQty: dec(t, "45.250"),
	}
	require.True(t, run.RemainingQty().Equal(dec(t, "75.250")))

	// over-dispatch shows up as a negative remainder rather than being hidden
	run.DispatchedQty = dec(t, "130.000")
	require.True(t, run.RemainingQty().IsNegative())
}
