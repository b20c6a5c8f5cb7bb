package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// DispatchRepository provides access to dispatch records
type DispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository creates a new dispatch repository
func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// runQtyDelta is one correction to a run's dispatched quantity
type runQtyDelta struct {
	runID uint
	delta decimal.Decimal
}

// runQtyAdjustments computes the dispatched-quantity corrections runs need
// when a dispatch changes. A nil prev is a new dispatch, a nil next a
// deleted one; a quantity edit or a move between runs adjusts both sides.
func runQtyAdjustments(prev, next *models.Dispatch) []runQtyDelta {
	switch {
	case prev == nil:
		return []runQtyDelta{{runID: next.CrusherRunID, delta: next.Quantity}}
	case next == nil:
		return []runQtyDelta{{runID: prev.CrusherRunID, delta: prev.Quantity.Neg()}}
	case prev.CrusherRunID == next.CrusherRunID:
		d := next.Quantity.Sub(prev.Quantity)
		if d.IsZero() {
			return nil
		}
		return []runQtyDelta{{runID: prev.CrusherRunID, delta: d}}
	default:
		return []runQtyDelta{
			{runID: prev.CrusherRunID, delta: prev.Quantity.Neg()},
			{runID: next.CrusherRunID, delta: next.Quantity},
		}
	}
}

func applyRunQtyAdjustments(tx *gorm.DB, deltas []runQtyDelta) error {
	for _, d := range deltas {
		if err := tx.Model(&models.CrusherRun{}).
			Where("id = ?", d.runID).
			UpdateColumn("dispatched_qty", gorm.Expr("dispatched_qty + ?", d.delta)).Error; err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a dispatch and bumps the run's dispatched quantity in the
// same transaction
func (r *DispatchRepository) Create(ctx context.Context, dispatch *models.Dispatch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dispatch).Error; err != nil {
			return err
		}
		return applyRunQtyAdjustments(tx, runQtyAdjustments(nil, dispatch))
	})
	return errors.Wrap(err, "failed to create dispatch")
}

// GetByID gets a dispatch with its run (and the run's material) and any
// orders it fulfills
func (r *DispatchRepository) GetByID(ctx context.Context, id uint) (*models.Dispatch, error) {
	var dispatch models.Dispatch
	err := r.db.WithContext(ctx).
		Preload("CrusherRun.Material").
		Preload("SalesOrder.Customer").
		Preload("PurchaseOrder.Vendor").
		First(&dispatch, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dispatch")
	}
	return &dispatch, nil
}

// List returns dispatches newest first with relations loaded
func (r *DispatchRepository) List(ctx context.Context) ([]models.Dispatch, error) {
	var dispatches []models.Dispatch
	err := r.db.WithContext(ctx).
		Preload("CrusherRun.Material").
		Preload("SalesOrder.Customer").
		Preload("PurchaseOrder.Vendor").
		Order("dispatch_date DESC, id DESC").Find(&dispatches).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dispatches")
	}
	return dispatches, nil
}

// ListByStatus returns dispatches in a delivery state, oldest first
func (r *DispatchRepository) ListByStatus(ctx context.Context, status models.DeliveryStatus) ([]models.Dispatch, error) {
	var dispatches []models.Dispatch
	err := r.db.WithContext(ctx).
		Where("delivery_status = ?", status).
		Order("dispatch_date ASC, id ASC").Find(&dispatches).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list dispatches with status %s", status)
	}
	return dispatches, nil
}

// Update saves changes to a dispatch and keeps the affected runs'
// dispatched quantities in step with the new quantity and run assignment
func (r *DispatchRepository) Update(ctx context.Context, dispatch *models.Dispatch) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.Dispatch
		if err := tx.First(&prev, dispatch.ID).Error; err != nil {
			return err
		}
		if err := tx.Save(dispatch).Error; err != nil {
			return err
		}
		return applyRunQtyAdjustments(tx, runQtyAdjustments(&prev, dispatch))
	})
	return errors.Wrap(err, "failed to update dispatch")
}

// MarkDelivered records the drop weight and delivery duration
func (r *DispatchRepository) MarkDelivered(ctx context.Context, id uint, dropQty decimal.Decimal, deliveredAt time.Time) error {
	var dispatch models.Dispatch
	if err := r.db.WithContext(ctx).First(&dispatch, id).Error; err != nil {
		return errors.Wrap(err, "failed to get dispatch for delivery")
	}
	days := int(deliveredAt.Sub(dispatch.DispatchDate).Hours() / 24)
	err := r.db.WithContext(ctx).Model(&models.Dispatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_status": models.DeliveryStatusDelivered,
			"drop_qty":        dropQty,
			"delivery_days":   days,
		}).Error
	return errors.Wrap(err, "failed to mark dispatch delivered")
}

// Delete removes a dispatch and returns its quantity to the run
func (r *DispatchRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dispatch models.Dispatch
		if err := tx.First(&dispatch, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Dispatch{}, id).Error; err != nil {
			return err
		}
		return applyRunQtyAdjustments(tx, runQtyAdjustments(&dispatch, nil))
	})
	return errors.Wrap(err, "failed to delete dispatch")
}
