package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is an outbound order header. Line items carry the materials;
// the flat material/qty/rate columns of the original schema only exist
// inside migration history.
type SalesOrder struct {
	Model
	CustomerID uint      `json:"customerId" gorm:"column:customer_id;not null" binding:"required"`
	VehicleNo  string    `json:"vehicleNo" gorm:"column:vehicle_no"`
	ChallanNo  string    `json:"challanNo" gorm:"column:challan_no"`
	Address    string    `json:"address" gorm:"column:address"`
	OrderDate  time.Time `json:"orderDate" gorm:"column:order_date;not null"`

	Customer *Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Items    []SalesOrderItem `json:"items" gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem is one material line on a sales order. It is deleted with
// its parent order but blocks deletion of the material and site it points at.
type SalesOrderItem struct {
	Model
	SalesOrderID  uint            `json:"salesOrderId" gorm:"column:sales_order_id;not null"`
	MaterialID    uint            `json:"materialId" gorm:"column:material_id;not null" binding:"required"`
	CrusherSiteID *uint           `json:"crusherSiteId" gorm:"column:crusher_site_id"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"column:quantity;type:decimal(12,3);not null"`
	Rate          decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(12,2);not null"`
	Unit          string          `json:"unit" gorm:"column:unit;size:32;default:'Ton'"`

	Material    *Material    `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
	CrusherSite *CrusherSite `json:"crusherSite,omitempty" gorm:"foreignKey:CrusherSiteID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides the table name
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// Amount is the line total (quantity x rate)
func (i SalesOrderItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Rate)
}

// PurchaseOrder is an inbound order for material from a vendor
type PurchaseOrder struct {
	Model
	VendorID   uint                `json:"vendorId" gorm:"column:vendor_id;not null" binding:"required"`
	MaterialID uint                `json:"materialId" gorm:"column:material_id;not null" binding:"required"`
	Quantity   decimal.Decimal     `json:"quantity" gorm:"column:quantity;type:decimal(12,3);not null"`
	Rate       decimal.Decimal     `json:"rate" gorm:"column:rate;type:decimal(12,2);not null"`
	Status     PurchaseOrderStatus `json:"status" gorm:"column:status;type:purchase_order_status;default:'PENDING'"`
	OrderDate  time.Time           `json:"orderDate" gorm:"column:order_date;not null"`

	Vendor   *Vendor   `json:"vendor,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:RESTRICT"`
	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
}

// TableName overrides the table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
