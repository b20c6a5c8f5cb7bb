package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// SalesOrderRepository provides access to sales orders and their line items
type SalesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) *SalesOrderRepository {
	return &SalesOrderRepository{db: db}
}

// Create inserts an order header together with its line items
func (r *SalesOrderRepository) Create(ctx context.Context, order *models.SalesOrder) error {
	err := r.db.WithContext(ctx).Create(order).Error
	return errors.Wrap(err, "failed to create sales order")
}

// GetByID gets an order with its customer and fully loaded items
func (r *SalesOrderRepository) GetByID(ctx context.Context, id uint) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Material").
		Preload("Items.CrusherSite").
		First(&order, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sales order")
	}
	return &order, nil
}

// List returns orders newest first with customers and items loaded
func (r *SalesOrderRepository) List(ctx context.Context) ([]models.SalesOrder, error) {
	var orders []models.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Material").
		Order("order_date DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales orders")
	}
	return orders, nil
}

// Update saves changes to an order header
func (r *SalesOrderRepository) Update(ctx context.Context, order *models.SalesOrder) error {
	err := r.db.WithContext(ctx).Omit("Items").Save(order).Error
	return errors.Wrap(err, "failed to update sales order")
}

// ReplaceItems swaps the order's line items for a new set in one transaction
func (r *SalesOrderRepository) ReplaceItems(ctx context.Context, orderID uint, items []models.SalesOrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_order_id = ?", orderID).Delete(&models.SalesOrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].SalesOrderID = orderID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	return errors.Wrap(err, "failed to replace sales order items")
}

// Delete removes an order; the database cascades its items away and leaves
// materials and sites untouched
func (r *SalesOrderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.SalesOrder{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete sales order")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete sales order")
	}
	return nil
}

// PurchaseOrderRepository provides access to purchase orders
type PurchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

// Create inserts a purchase order
func (r *PurchaseOrderRepository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	err := r.db.WithContext(ctx).Create(order).Error
	return errors.Wrap(err, "failed to create purchase order")
}

// GetByID gets a purchase order with its vendor and material
func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Material").
		First(&order, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get purchase order")
	}
	return &order, nil
}

// List returns purchase orders newest first with vendors and materials loaded
func (r *PurchaseOrderRepository) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Material").
		Order("order_date DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list purchase orders")
	}
	return orders, nil
}

// Update saves changes to a purchase order
func (r *PurchaseOrderRepository) Update(ctx context.Context, order *models.PurchaseOrder) error {
	err := r.db.WithContext(ctx).Save(order).Error
	return errors.Wrap(err, "failed to update purchase order")
}

// Delete removes a purchase order; dispatches that referenced it become
// unassigned (SET NULL)
func (r *PurchaseOrderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PurchaseOrder{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete purchase order")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete purchase order")
	}
	return nil
}
