package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMachineStatusSet(t *testing.T) {
	require.ElementsMatch(t,
		[]MachineStatus{MachineStatusActive, MachineStatusInactive, MachineStatusMaintenance},
		MachineStatuses())

	for _, s := range MachineStatuses() {
		require.True(t, s.Valid(), s)
	}
	require.False(t, MachineStatus("BROKEN").Valid())
	require.False(t, MachineStatus("active").Valid(), "values are case sensitive")
}

func TestPurchaseOrderStatusSet(t *testing.T) {
	require.ElementsMatch(t,
		[]PurchaseOrderStatus{PurchaseOrderStatusPending, PurchaseOrderStatusReceived, PurchaseOrderStatusPartial},
		PurchaseOrderStatuses())

	parsed, err := ParsePurchaseOrderStatus("PARTIAL")
	require.NoError(t, err)
	require.Equal(t, PurchaseOrderStatusPartial, parsed)

	_, err = ParsePurchaseOrderStatus("CANCELLED")
	require.Error(t, err)
}

func TestDeliveryStatusSet(t *testing.T) {
	require.ElementsMatch(t,
		[]DeliveryStatus{DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered},
		DeliveryStatuses())

	parsed, err := ParseDeliveryStatus("IN_TRANSIT")
	require.NoError(t, err)
	require.Equal(t, DeliveryStatusInTransit, parsed)

	_, err = ParseDeliveryStatus("LOST")
	require.Error(t, err)
}

func TestUserRoleSet(t *testing.T) {
	require.ElementsMatch(t,
		[]UserRole{UserRoleSuperAdmin, UserRoleAdmin, UserRoleStaff},
		UserRoles())

	parsed, err := ParseUserRole("SUPER_ADMIN")
	require.NoError(t, err)
	require.Equal(t, UserRoleSuperAdmin, parsed)
}

func TestAuditActionSet(t *testing.T) {
	require.ElementsMatch(t,
		[]AuditAction{AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin, AuditActionLogout},
		AuditActions())
}

func TestEnumValuerRejectsInvalid(t *testing.T) {
	v, err := MachineStatusActive.Value()
	require.NoError(t, err)
	require.Equal(t, "ACTIVE", v)

	_, err = MachineStatus("BROKEN").Value()
	require.Error(t, err)

	_, err = PurchaseOrderStatus("").Value()
	require.Error(t, err)
}

func TestEnumScan(t *testing.T) {
	var status DeliveryStatus
	require.NoError(t, status.Scan("DELIVERED"))
	require.Equal(t, DeliveryStatusDelivered, status)

	require.NoError(t, status.Scan([]byte("PENDING")))
	require.Equal(t, DeliveryStatusPending, status)

	require.Error(t, status.Scan(42))
}
