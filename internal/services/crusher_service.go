package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/repositories"
)

type machineStore interface {
	Create(ctx context.Context, machine *models.CrusherMachine) error
	GetByID(ctx context.Context, id uint) (*models.CrusherMachine, error)
	List(ctx context.Context) ([]models.CrusherMachine, error)
	Update(ctx context.Context, machine *models.CrusherMachine) error
}

type crusherRunStore interface {
	Create(ctx context.Context, run *models.CrusherRun) error
	GetByID(ctx context.Context, id uint) (*models.CrusherRun, error)
	List(ctx context.Context) ([]models.CrusherRun, error)
	Update(ctx context.Context, run *models.CrusherRun) error
	Delete(ctx context.Context, id uint) error
}

// CrusherService manages machines and production runs
type CrusherService struct {
	machineRepo machineStore
	runRepo     crusherRunStore
	audit       auditStore
}

// NewCrusherService creates the crusher service over a database handle
func NewCrusherService(db *gorm.DB) *CrusherService {
	return &CrusherService{
		machineRepo: repositories.NewCrusherMachineRepository(db),
		runRepo:     repositories.NewCrusherRunRepository(db),
		audit:       repositories.NewAuditLogRepository(db),
	}
}

// CreateMachine registers a machine, defaulting the status to ACTIVE
func (s *CrusherService) CreateMachine(ctx context.Context, actor Actor, machine *models.CrusherMachine) error {
	if machine.Status == "" {
		machine.Status = models.MachineStatusActive
	}
	if !machine.Status.Valid() {
		return validationErrorf("invalid machine status %q", machine.Status)
	}
	if err := s.machineRepo.Create(ctx, machine); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "crusher_machine", machine.ID, machine)
	return nil
}

// GetMachine gets a machine by id
func (s *CrusherService) GetMachine(ctx context.Context, id uint) (*models.CrusherMachine, error) {
	return s.machineRepo.GetByID(ctx, id)
}

// ListMachines returns all machines
func (s *CrusherService) ListMachines(ctx context.Context) ([]models.CrusherMachine, error) {
	return s.machineRepo.List(ctx)
}

// UpdateMachineStatus moves a machine between operational states and stamps
// the maintenance time when it enters MAINTENANCE
func (s *CrusherService) UpdateMachineStatus(ctx context.Context, actor Actor, id uint, status models.MachineStatus) error {
	if !status.Valid() {
		return validationErrorf("invalid machine status %q", status)
	}
	machine, err := s.machineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	machine.Status = status
	if status == models.MachineStatusMaintenance {
		now := time.Now()
		machine.LastMaintenanceAt = &now
	}
	if err := s.machineRepo.Update(ctx, machine); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "crusher_machine", id, map[string]string{"status": string(status)})
	return nil
}

// CreateRun records a production run. Input and produced quantities must be
// positive; the machine defaults to the primary crusher when unset.
func (s *CrusherService) CreateRun(ctx context.Context, actor Actor, run *models.CrusherRun) error {
	if run.ProducedQty.LessThanOrEqual(decimal.Zero) {
		return validationErrorf("produced quantity must be positive")
	}
	if run.InputQty.LessThanOrEqual(decimal.Zero) {
		return validationErrorf("input quantity must be positive")
	}
	if run.MachineID == 0 {
		run.MachineID = models.DefaultMachineID
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "crusher_run", run.ID, run)
	return nil
}

// GetRun gets a run with its material and machine loaded
func (s *CrusherService) GetRun(ctx context.Context, id uint) (*models.CrusherRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

// ListRuns returns runs newest first
func (s *CrusherService) ListRuns(ctx context.Context) ([]models.CrusherRun, error) {
	return s.runRepo.List(ctx)
}

// UpdateRun saves changes to a run
func (s *CrusherService) UpdateRun(ctx context.Context, actor Actor, run *models.CrusherRun) error {
	if err := s.runRepo.Update(ctx, run); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "crusher_run", run.ID, run)
	return nil
}

// DeleteRun removes a run; the database blocks this while dispatches still
// reference it
func (s *CrusherService) DeleteRun(ctx context.Context, actor Actor, id uint) error {
	if err := s.runRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "crusher_run", id, nil)
	return nil
}
