package models

import (
	"database/sql/driver"
	"fmt"
)

// Status and role fields are closed string types backed by named Postgres
// enum types. The Go constant set is the single source of truth at the
// application boundary; the migrations create the matching database types.
// Adding a value means one new constant plus one ALTER TYPE migration.

// MachineStatus is the operational state of a crusher machine
type MachineStatus string

const (
	MachineStatusActive      MachineStatus = "ACTIVE"
	MachineStatusInactive    MachineStatus = "INACTIVE"
	MachineStatusMaintenance MachineStatus = "MAINTENANCE"
)

// MachineStatuses lists every legal machine status
func MachineStatuses() []MachineStatus {
	return []MachineStatus{MachineStatusActive, MachineStatusInactive, MachineStatusMaintenance}
}

// Valid reports whether the value belongs to the closed set
func (s MachineStatus) Valid() bool {
	switch s {
	case MachineStatusActive, MachineStatusInactive, MachineStatusMaintenance:
		return true
	}
	return false
}

// ParseMachineStatus converts a wire value into a MachineStatus
func ParseMachineStatus(v string) (MachineStatus, error) {
	s := MachineStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid machine status %q", v)
	}
	return s, nil
}

// Value implements driver.Valuer
func (s MachineStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid machine status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *MachineStatus) Scan(src interface{}) error {
	v, err := scanEnum(src, "machine status")
	if err != nil {
		return err
	}
	*s = MachineStatus(v)
	return nil
}

// PurchaseOrderStatus is the fulfillment state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending  PurchaseOrderStatus = "PENDING"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusPartial  PurchaseOrderStatus = "PARTIAL"
)

// PurchaseOrderStatuses lists every legal purchase order status
func PurchaseOrderStatuses() []PurchaseOrderStatus {
	return []PurchaseOrderStatus{PurchaseOrderStatusPending, PurchaseOrderStatusReceived, PurchaseOrderStatusPartial}
}

// Valid reports whether the value belongs to the closed set
func (s PurchaseOrderStatus) Valid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusReceived, PurchaseOrderStatusPartial:
		return true
	}
	return false
}

// ParsePurchaseOrderStatus converts a wire value into a PurchaseOrderStatus
func ParsePurchaseOrderStatus(v string) (PurchaseOrderStatus, error) {
	s := PurchaseOrderStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid purchase order status %q", v)
	}
	return s, nil
}

// Value implements driver.Valuer
func (s PurchaseOrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid purchase order status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *PurchaseOrderStatus) Scan(src interface{}) error {
	v, err := scanEnum(src, "purchase order status")
	if err != nil {
		return err
	}
	*s = PurchaseOrderStatus(v)
	return nil
}

// DeliveryStatus is the delivery state of a dispatch
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
)

// DeliveryStatuses lists every legal delivery status
func DeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered}
}

// Valid reports whether the value belongs to the closed set
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	}
	return false
}

// ParseDeliveryStatus converts a wire value into a DeliveryStatus
func ParseDeliveryStatus(v string) (DeliveryStatus, error) {
	s := DeliveryStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid delivery status %q", v)
	}
	return s, nil
}

// Value implements driver.Valuer
func (s DeliveryStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid delivery status %q", string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *DeliveryStatus) Scan(src interface{}) error {
	v, err := scanEnum(src, "delivery status")
	if err != nil {
		return err
	}
	*s = DeliveryStatus(v)
	return nil
}

// UserRole is the access level of a user
type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleStaff      UserRole = "STAFF"
)

// UserRoles lists every legal user role
func UserRoles() []UserRole {
	return []UserRole{UserRoleSuperAdmin, UserRoleAdmin, UserRoleStaff}
}

// Valid reports whether the value belongs to the closed set
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSuperAdmin, UserRoleAdmin, UserRoleStaff:
		return true
	}
	return false
}

// ParseUserRole converts a wire value into a UserRole
func ParseUserRole(v string) (UserRole, error) {
	r := UserRole(v)
	if !r.Valid() {
		return "", fmt.Errorf("invalid user role %q", v)
	}
	return r, nil
}

// Value implements driver.Valuer
func (r UserRole) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid user role %q", string(r))
	}
	return string(r), nil
}

// Scan implements sql.Scanner
func (r *UserRole) Scan(src interface{}) error {
	v, err := scanEnum(src, "user role")
	if err != nil {
		return err
	}
	*r = UserRole(v)
	return nil
}

// AuditAction is the kind of operation an audit log entry records
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
)

// AuditActions lists every legal audit action
func AuditActions() []AuditAction {
	return []AuditAction{AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin, AuditActionLogout}
}

// Valid reports whether the value belongs to the closed set
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionLogin, AuditActionLogout:
		return true
	}
	return false
}

// ParseAuditAction converts a wire value into an AuditAction
func ParseAuditAction(v string) (AuditAction, error) {
	a := AuditAction(v)
	if !a.Valid() {
		return "", fmt.Errorf("invalid audit action %q", v)
	}
	return a, nil
}

// Value implements driver.Valuer
func (a AuditAction) Value() (driver.Value, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid audit action %q", string(a))
	}
	return string(a), nil
}

// Scan implements sql.Scanner
func (a *AuditAction) Scan(src interface{}) error {
	v, err := scanEnum(src, "audit action")
	if err != nil {
		return err
	}
	*a = AuditAction(v)
	return nil
}

func scanEnum(src interface{}, kind string) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into %s", src, kind)
	}
}
