package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// MaterialRepository provides access to material master data
type MaterialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts a material
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	err := r.db.WithContext(ctx).Create(material).Error
	return errors.Wrap(err, "failed to create material")
}

// GetByID gets a material by id
func (r *MaterialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).First(&material, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get material")
	}
	return &material, nil
}

// List returns all materials ordered by name
func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list materials")
	}
	return materials, nil
}

// Update saves changes to a material
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	err := r.db.WithContext(ctx).Save(material).Error
	return errors.Wrap(err, "failed to update material")
}

// Delete removes a material. The database restricts deletion while order
// items or runs still reference it and cascades any site links away.
func (r *MaterialRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Material{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete material")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete material")
	}
	return nil
}

// CrusherSiteRepository provides access to crusher sites and their material links
type CrusherSiteRepository struct {
	db *gorm.DB
}

// NewCrusherSiteRepository creates a new crusher site repository
func NewCrusherSiteRepository(db *gorm.DB) *CrusherSiteRepository {
	return &CrusherSiteRepository{db: db}
}

// Create inserts a site
func (r *CrusherSiteRepository) Create(ctx context.Context, site *models.CrusherSite) error {
	err := r.db.WithContext(ctx).Create(site).Error
	return errors.Wrap(err, "failed to create crusher site")
}

// GetByID gets a site with its material links
func (r *CrusherSiteRepository) GetByID(ctx context.Context, id uint) (*models.CrusherSite, error) {
	var site models.CrusherSite
	err := r.db.WithContext(ctx).
		Preload("Materials.Material").
		First(&site, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get crusher site")
	}
	return &site, nil
}

// List returns all sites with their material links
func (r *CrusherSiteRepository) List(ctx context.Context) ([]models.CrusherSite, error) {
	var sites []models.CrusherSite
	err := r.db.WithContext(ctx).
		Preload("Materials.Material").
		Order("name ASC").Find(&sites).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list crusher sites")
	}
	return sites, nil
}

// Update saves changes to a site
func (r *CrusherSiteRepository) Update(ctx context.Context, site *models.CrusherSite) error {
	err := r.db.WithContext(ctx).Save(site).Error
	return errors.Wrap(err, "failed to update crusher site")
}

// Delete removes a site; its material links cascade away with it
func (r *CrusherSiteRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CrusherSite{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete crusher site")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete crusher site")
	}
	return nil
}

// LinkMaterial records that a site produces a material
func (r *CrusherSiteRepository) LinkMaterial(ctx context.Context, link *models.CrusherSiteMaterial) error {
	err := r.db.WithContext(ctx).Create(link).Error
	return errors.Wrap(err, "failed to link material to crusher site")
}

// UnlinkMaterial removes a site-material link
func (r *CrusherSiteRepository) UnlinkMaterial(ctx context.Context, siteID, materialID uint) error {
	res := r.db.WithContext(ctx).
		Where("crusher_site_id = ? AND material_id = ?", siteID, materialID).
		Delete(&models.CrusherSiteMaterial{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to unlink material from crusher site")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to unlink material from crusher site")
	}
	return nil
}

// CrusherMachineRepository provides access to crusher machines
type CrusherMachineRepository struct {
	db *gorm.DB
}

// NewCrusherMachineRepository creates a new machine repository
func NewCrusherMachineRepository(db *gorm.DB) *CrusherMachineRepository {
	return &CrusherMachineRepository{db: db}
}

// Create inserts a machine
func (r *CrusherMachineRepository) Create(ctx context.Context, machine *models.CrusherMachine) error {
	err := r.db.WithContext(ctx).Create(machine).Error
	return errors.Wrap(err, "failed to create crusher machine")
}

// GetByID gets a machine by id
func (r *CrusherMachineRepository) GetByID(ctx context.Context, id uint) (*models.CrusherMachine, error) {
	var machine models.CrusherMachine
	err := r.db.WithContext(ctx).First(&machine, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get crusher machine")
	}
	return &machine, nil
}

// List returns all machines
func (r *CrusherMachineRepository) List(ctx context.Context) ([]models.CrusherMachine, error) {
	var machines []models.CrusherMachine
	err := r.db.WithContext(ctx).Order("id ASC").Find(&machines).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list crusher machines")
	}
	return machines, nil
}

// Update saves changes to a machine
func (r *CrusherMachineRepository) Update(ctx context.Context, machine *models.CrusherMachine) error {
	err := r.db.WithContext(ctx).Save(machine).Error
	return errors.Wrap(err, "failed to update crusher machine")
}

// CrusherRunRepository provides access to production runs
type CrusherRunRepository struct {
	db *gorm.DB
}

// NewCrusherRunRepository creates a new run repository
func NewCrusherRunRepository(db *gorm.DB) *CrusherRunRepository {
	return &CrusherRunRepository{db: db}
}

// Create inserts a run
func (r *CrusherRunRepository) Create(ctx context.Context, run *models.CrusherRun) error {
	err := r.db.WithContext(ctx).Create(run).Error
	return errors.Wrap(err, "failed to create crusher run")
}

// GetByID gets a run with its material and machine
func (r *CrusherRunRepository) GetByID(ctx context.Context, id uint) (*models.CrusherRun, error) {
	var run models.CrusherRun
	err := r.db.WithContext(ctx).
		Preload("Material").
		Preload("Machine").
		First(&run, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get crusher run")
	}
	return &run, nil
}

// List returns runs newest first with material and machine loaded
func (r *CrusherRunRepository) List(ctx context.Context) ([]models.CrusherRun, error) {
	var runs []models.CrusherRun
	err := r.db.WithContext(ctx).
		Preload("Material").
		Preload("Machine").
		Order("run_date DESC, id DESC").Find(&runs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list crusher runs")
	}
	return runs, nil
}

// Update saves changes to a run
func (r *CrusherRunRepository) Update(ctx context.Context, run *models.CrusherRun) error {
	err := r.db.WithContext(ctx).Save(run).Error
	return errors.Wrap(err, "failed to update crusher run")
}

// Delete removes a run; the database restricts this while dispatches reference it
func (r *CrusherRunRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CrusherRun{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete crusher run")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "failed to delete crusher run")
	}
	return nil
}
