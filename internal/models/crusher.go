package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMachineID is the bootstrap machine every pre-existing run was
// attributed to when machine tracking was introduced.
const DefaultMachineID uint = 1

// CrusherMachine is a crushing unit installed at a site
type CrusherMachine struct {
	Model
	Name              string        `json:"name" gorm:"column:name;not null" binding:"required"`
	Status            MachineStatus `json:"status" gorm:"column:status;type:crusher_machine_status;default:'ACTIVE'"`
	LastMaintenanceAt *time.Time    `json:"lastMaintenanceAt" gorm:"column:last_maintenance_at"`
}

// TableName overrides the table name
func (CrusherMachine) TableName() string {
	return "crusher_machines"
}

// CrusherRun is one production batch of material from a machine
type CrusherRun struct {
	Model
	MaterialID    uint            `json:"materialId" gorm:"column:material_id;not null" binding:"required"`
	MachineID     uint            `json:"machineId" gorm:"column:machine_id;not null;default:1"`
	ProducedQty   decimal.Decimal `json:"producedQty" gorm:"column:produced_qty;type:decimal(12,3);not null"`
	InputQty      decimal.Decimal `json:"inputQty" gorm:"column:input_qty;type:decimal(12,3);not null"`
	DispatchedQty decimal.Decimal `json:"dispatchedQty" gorm:"column:dispatched_qty;type:decimal(12,3);default:0"`
	RunDate       time.Time       `json:"runDate" gorm:"column:run_date;not null"`

	Material *Material       `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
	Machine  *CrusherMachine `json:"machine,omitempty" gorm:"foreignKey:MachineID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides the table name
func (CrusherRun) TableName() string {
	return "crusher_runs"
}

// RemainingQty is the produced quantity not yet dispatched
func (r CrusherRun) RemainingQty() decimal.Decimal {
	return r.ProducedQty.Sub(r.DispatchedQty)
}
