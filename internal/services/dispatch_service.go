package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/repositories"
)

type dispatchStore interface {
	Create(ctx context.Context, dispatch *models.Dispatch) error
	GetByID(ctx context.Context, id uint) (*models.Dispatch, error)
	List(ctx context.Context) ([]models.Dispatch, error)
	ListByStatus(ctx context.Context, status models.DeliveryStatus) ([]models.Dispatch, error)
	Update(ctx context.Context, dispatch *models.Dispatch) error
	MarkDelivered(ctx context.Context, id uint, dropQty decimal.Decimal, deliveredAt time.Time) error
	Delete(ctx context.Context, id uint) error
}

type runStore interface {
	GetByID(ctx context.Context, id uint) (*models.CrusherRun, error)
}

// DispatchService tracks material leaving crusher runs
type DispatchService struct {
	dispatchRepo dispatchStore
	runRepo      runStore
	audit        auditStore
}

// NewDispatchService creates the dispatch service over a database handle
func NewDispatchService(db *gorm.DB) *DispatchService {
	return &DispatchService{
		dispatchRepo: repositories.NewDispatchRepository(db),
		runRepo:      repositories.NewCrusherRunRepository(db),
		audit:        repositories.NewAuditLogRepository(db),
	}
}

// CreateDispatch records an outbound load against a crusher run. The run
// must exist and the quantity must be positive; the run's dispatched total
// is bumped in the same transaction as the insert.
func (s *DispatchService) CreateDispatch(ctx context.Context, actor Actor, dispatch *models.Dispatch) error {
	if dispatch.Quantity.LessThanOrEqual(decimal.Zero) {
		return validationErrorf("dispatch quantity must be positive")
	}
	run, err := s.runRepo.GetByID(ctx, dispatch.CrusherRunID)
	if err != nil {
		return errors.Wrap(err, "crusher run lookup failed")
	}
	if remaining := run.RemainingQty(); dispatch.Quantity.GreaterThan(remaining) {
		log.Warn().
			Uint("runId", run.ID).
			Str("remaining", remaining.String()).
			Str("requested", dispatch.Quantity.String()).
			Msg("dispatch exceeds remaining run quantity")
	}
	if dispatch.DeliveryStatus == "" {
		dispatch.DeliveryStatus = models.DeliveryStatusPending
	}
	if !dispatch.DeliveryStatus.Valid() {
		return validationErrorf("invalid delivery status %q", dispatch.DeliveryStatus)
	}
	if err := s.dispatchRepo.Create(ctx, dispatch); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "dispatch", dispatch.ID, dispatch)
	return nil
}

// GetDispatch gets a dispatch with its run, order and party associations
func (s *DispatchService) GetDispatch(ctx context.Context, id uint) (*models.Dispatch, error) {
	return s.dispatchRepo.GetByID(ctx, id)
}

// ListDispatches returns all dispatches, optionally filtered by delivery
// status when one is supplied
func (s *DispatchService) ListDispatches(ctx context.Context, status string) ([]models.Dispatch, error) {
	if status == "" {
		return s.dispatchRepo.List(ctx)
	}
	parsed, err := models.ParseDeliveryStatus(status)
	if err != nil {
		return nil, validationErrorf("invalid delivery status %q", status)
	}
	return s.dispatchRepo.ListByStatus(ctx, parsed)
}

// UpdateDispatch saves changes to a dispatch record. An unset delivery
// status defaults to pending, same as on create.
func (s *DispatchService) UpdateDispatch(ctx context.Context, actor Actor, dispatch *models.Dispatch) error {
	if dispatch.DeliveryStatus == "" {
		dispatch.DeliveryStatus = models.DeliveryStatusPending
	}
	if !dispatch.DeliveryStatus.Valid() {
		return validationErrorf("invalid delivery status %q", dispatch.DeliveryStatus)
	}
	if err := s.dispatchRepo.Update(ctx, dispatch); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "dispatch", dispatch.ID, dispatch)
	return nil
}

// MarkDelivered closes out a dispatch with the weighbridge drop quantity.
// Delivery days are counted from the dispatch date.
func (s *DispatchService) MarkDelivered(ctx context.Context, actor Actor, id uint, dropQty decimal.Decimal, deliveredAt time.Time) error {
	if dropQty.LessThanOrEqual(decimal.Zero) {
		return validationErrorf("drop quantity must be positive")
	}
	if err := s.dispatchRepo.MarkDelivered(ctx, id, dropQty, deliveredAt); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "dispatch", id, map[string]string{
		"deliveryStatus": string(models.DeliveryStatusDelivered),
		"dropQty":        dropQty.String(),
	})
	return nil
}

// TransitLoss reports pickup minus drop for a delivered dispatch. The
// second return is false when either weight is missing.
func (s *DispatchService) TransitLoss(ctx context.Context, id uint) (decimal.Decimal, bool, error) {
	dispatch, err := s.dispatchRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, false, err
	}
	loss, ok := dispatch.TransitLoss()
	return loss, ok, nil
}

// DeleteDispatch removes a dispatch record
func (s *DispatchService) DeleteDispatch(ctx context.Context, actor Actor, id uint) error {
	if err := s.dispatchRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "dispatch", id, nil)
	return nil
}
