package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dispatch is a single outbound shipment of material. It always references
// the run it came from; the commercial order it fulfills (sale or purchase)
// is optional and survives the order's deletion as an unassigned dispatch
// (both order foreign keys are SET NULL).
type Dispatch struct {
	Model
	CrusherRunID    uint             `json:"crusherRunId" gorm:"column:crusher_run_id;not null" binding:"required"`
	SalesOrderID    *uint            `json:"salesOrderId" gorm:"column:sales_order_id"`
	PurchaseOrderID *uint            `json:"purchaseOrderId" gorm:"column:purchase_order_id"`
	DispatchDate    time.Time        `json:"dispatchDate" gorm:"column:dispatch_date;not null"`
	Quantity        decimal.Decimal  `json:"quantity" gorm:"column:quantity;type:decimal(12,3);not null"`
	Destination     string           `json:"destination" gorm:"column:destination"`
	VehicleNo       string           `json:"vehicleNo" gorm:"column:vehicle_no"`
	Driver          string           `json:"driver" gorm:"column:driver"`
	PickupQty       *decimal.Decimal `json:"pickupQty" gorm:"column:pickup_qty;type:decimal(12,3)"`
	DropQty         *decimal.Decimal `json:"dropQty" gorm:"column:drop_qty;type:decimal(12,3)"`
	DeliveryStatus  DeliveryStatus   `json:"deliveryStatus" gorm:"column:delivery_status;type:dispatch_delivery_status;default:'PENDING'"`
	DeliveryDays    *int             `json:"deliveryDays" gorm:"column:delivery_days"`
	Notes           string           `json:"notes" gorm:"column:notes;type:text"`

	CrusherRun    *CrusherRun    `json:"crusherRun,omitempty" gorm:"foreignKey:CrusherRunID;constraint:OnDelete:RESTRICT"`
	SalesOrder    *SalesOrder    `json:"salesOrder,omitempty" gorm:"foreignKey:SalesOrderID;constraint:OnDelete:SET NULL"`
	PurchaseOrder *PurchaseOrder `json:"purchaseOrder,omitempty" gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:SET NULL"`
}

// TableName overrides the table name
func (Dispatch) TableName() string {
	return "dispatches"
}

// TransitLoss is pickup minus drop weight. Positive means material was lost
// in transit, negative means the delivered weight exceeded the loaded weight.
// Returns false when either weighment is missing.
func (d Dispatch) TransitLoss() (decimal.Decimal, bool) {
	if d.PickupQty == nil || d.DropQty == nil {
		return decimal.Zero, false
	}
	return d.PickupQty.Sub(*d.DropQty), true
}
