package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSalesOrderItemAmount(t *testing.T) {
	item := SalesOrderItem{
		Quantity: decimal.RequireFromString("12.500"),
		Rate:     decimal.RequireFromString("450.75"),
	}
	require.True(t, item.Amount().Equal(decimal.RequireFromString("5634.375")))
}

func TestSalesOrderItemAmountExactDecimals(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3, not a float approximation
	item := SalesOrderItem{
		Quantity: decimal.RequireFromString("0.1"),
		Rate:     decimal.NewFromInt(3),
	}
	require.Equal(t, "0.3", item.Amount().String())
}
