package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/cache"
	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/repositories"
)

const (
	materialListCacheKey = "crusher:materials"
	siteListCacheKey     = "crusher:sites"
	cacheTTL             = 5 * time.Minute
)

type materialStore interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	List(ctx context.Context) ([]models.Material, error)
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error
}

type siteStore interface {
	Create(ctx context.Context, site *models.CrusherSite) error
	GetByID(ctx context.Context, id uint) (*models.CrusherSite, error)
	List(ctx context.Context) ([]models.CrusherSite, error)
	Update(ctx context.Context, site *models.CrusherSite) error
	Delete(ctx context.Context, id uint) error
	LinkMaterial(ctx context.Context, link *models.CrusherSiteMaterial) error
	UnlinkMaterial(ctx context.Context, siteID, materialID uint) error
}

// MasterDataService owns materials, sites, and the customer/vendor registers
type MasterDataService struct {
	materialRepo materialStore
	siteRepo     siteStore
	customerRepo customerStore
	vendorRepo   vendorStore
	audit        auditStore
	cache        *cache.RedisCache
}

type customerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
}

type vendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uint) error
}

// NewMasterDataService creates the master-data service over a database handle
func NewMasterDataService(db *gorm.DB, redisCache *cache.RedisCache) *MasterDataService {
	return &MasterDataService{
		materialRepo: repositories.NewMaterialRepository(db),
		siteRepo:     repositories.NewCrusherSiteRepository(db),
		customerRepo: repositories.NewCustomerRepository(db),
		vendorRepo:   repositories.NewVendorRepository(db),
		audit:        repositories.NewAuditLogRepository(db),
		cache:        redisCache,
	}
}

// CreateMaterial inserts a material and invalidates the list cache
func (s *MasterDataService) CreateMaterial(ctx context.Context, actor Actor, material *models.Material) error {
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return err
	}
	s.invalidate(ctx, materialListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "material", material.ID, material)
	return nil
}

// GetMaterial gets one material
func (s *MasterDataService) GetMaterial(ctx context.Context, id uint) (*models.Material, error) {
	return s.materialRepo.GetByID(ctx, id)
}

// ListMaterials returns all materials, read through the cache when enabled
func (s *MasterDataService) ListMaterials(ctx context.Context) ([]models.Material, error) {
	if s.cache.Enabled() {
		var cached []models.Material
		if err := s.cache.Get(ctx, materialListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, materialListCacheKey, materials, cacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache material list")
		}
	}
	return materials, nil
}

// UpdateMaterial saves a material and invalidates the list cache
func (s *MasterDataService) UpdateMaterial(ctx context.Context, actor Actor, material *models.Material) error {
	if err := s.materialRepo.Update(ctx, material); err != nil {
		return err
	}
	s.invalidate(ctx, materialListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "material", material.ID, material)
	return nil
}

// DeleteMaterial removes a material. The delete is refused by the database
// while order items, runs, or purchase orders still reference it.
func (s *MasterDataService) DeleteMaterial(ctx context.Context, actor Actor, id uint) error {
	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, materialListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "material", id, nil)
	return nil
}

// CreateSite inserts a crusher site
func (s *MasterDataService) CreateSite(ctx context.Context, actor Actor, site *models.CrusherSite) error {
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return err
	}
	s.invalidate(ctx, siteListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "crusher_site", site.ID, site)
	return nil
}

// GetSite gets one site with its material links
func (s *MasterDataService) GetSite(ctx context.Context, id uint) (*models.CrusherSite, error) {
	return s.siteRepo.GetByID(ctx, id)
}

// ListSites returns all sites, read through the cache when enabled
func (s *MasterDataService) ListSites(ctx context.Context) ([]models.CrusherSite, error) {
	if s.cache.Enabled() {
		var cached []models.CrusherSite
		if err := s.cache.Get(ctx, siteListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, siteListCacheKey, sites, cacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache site list")
		}
	}
	return sites, nil
}

// UpdateSite saves a site
func (s *MasterDataService) UpdateSite(ctx context.Context, actor Actor, site *models.CrusherSite) error {
	if err := s.siteRepo.Update(ctx, site); err != nil {
		return err
	}
	s.invalidate(ctx, siteListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "crusher_site", site.ID, site)
	return nil
}

// DeleteSite removes a site; its material links cascade away
func (s *MasterDataService) DeleteSite(ctx context.Context, actor Actor, id uint) error {
	if err := s.siteRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, siteListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "crusher_site", id, nil)
	return nil
}

// LinkSiteMaterial records that a site produces a material. The pair is
// unique; relinking an existing pair surfaces a duplicate error.
func (s *MasterDataService) LinkSiteMaterial(ctx context.Context, actor Actor, siteID, materialID uint) error {
	link := &models.CrusherSiteMaterial{CrusherSiteID: siteID, MaterialID: materialID}
	if err := s.siteRepo.LinkMaterial(ctx, link); err != nil {
		return err
	}
	s.invalidate(ctx, siteListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "crusher_site_material", link.ID, link)
	return nil
}

// UnlinkSiteMaterial removes a site-material link
func (s *MasterDataService) UnlinkSiteMaterial(ctx context.Context, actor Actor, siteID, materialID uint) error {
	if err := s.siteRepo.UnlinkMaterial(ctx, siteID, materialID); err != nil {
		return err
	}
	s.invalidate(ctx, siteListCacheKey)
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "crusher_site_material", 0, nil)
	return nil
}

// CreateCustomer inserts a customer
func (s *MasterDataService) CreateCustomer(ctx context.Context, actor Actor, customer *models.Customer) error {
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "customer", customer.ID, customer)
	return nil
}

// GetCustomer gets one customer
func (s *MasterDataService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// ListCustomers returns all customers
func (s *MasterDataService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.List(ctx)
}

// UpdateCustomer saves a customer
func (s *MasterDataService) UpdateCustomer(ctx context.Context, actor Actor, customer *models.Customer) error {
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "customer", customer.ID, customer)
	return nil
}

// DeleteCustomer removes a customer; refused while sales orders reference it
func (s *MasterDataService) DeleteCustomer(ctx context.Context, actor Actor, id uint) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "customer", id, nil)
	return nil
}

// CreateVendor inserts a vendor
func (s *MasterDataService) CreateVendor(ctx context.Context, actor Actor, vendor *models.Vendor) error {
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "vendor", vendor.ID, vendor)
	return nil
}

// GetVendor gets one vendor
func (s *MasterDataService) GetVendor(ctx context.Context, id uint) (*models.Vendor, error) {
	return s.vendorRepo.GetByID(ctx, id)
}

// ListVendors returns all vendors
func (s *MasterDataService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.vendorRepo.List(ctx)
}

// UpdateVendor saves a vendor
func (s *MasterDataService) UpdateVendor(ctx context.Context, actor Actor, vendor *models.Vendor) error {
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "vendor", vendor.ID, vendor)
	return nil
}

// DeleteVendor removes a vendor; refused while purchase orders reference it
func (s *MasterDataService) DeleteVendor(ctx context.Context, actor Actor, id uint) error {
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "vendor", id, nil)
	return nil
}

func (s *MasterDataService) invalidate(ctx context.Context, key string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate cache")
	}
}
