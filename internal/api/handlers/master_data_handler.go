package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/services"
)

// MasterDataHandler serves materials, crusher sites, customers and vendors
type MasterDataHandler struct {
	service *services.MasterDataService
}

// NewMasterDataHandler creates a new master data handler
func NewMasterDataHandler(service *services.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{service: service}
}

// RegisterRoutes registers the master data routes
func (h *MasterDataHandler) RegisterRoutes(router *gin.Engine) {
	materials := router.Group("/api/v1/materials")
	{
		materials.POST("", h.CreateMaterial)
		materials.GET("", h.ListMaterials)
		materials.GET("/:id", h.GetMaterial)
		materials.PUT("/:id", h.UpdateMaterial)
		materials.DELETE("/:id", h.DeleteMaterial)
	}

	sites := router.Group("/api/v1/sites")
	{
		sites.POST("", h.CreateSite)
		sites.GET("", h.ListSites)
		sites.GET("/:id", h.GetSite)
		sites.PUT("/:id", h.UpdateSite)
		sites.DELETE("/:id", h.DeleteSite)
		sites.POST("/:id/materials/:materialId", h.LinkSiteMaterial)
		sites.DELETE("/:id/materials/:materialId", h.UnlinkSiteMaterial)
	}

	customers := router.Group("/api/v1/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	vendors := router.Group("/api/v1/vendors")
	{
		vendors.POST("", h.CreateVendor)
		vendors.GET("", h.ListVendors)
		vendors.GET("/:id", h.GetVendor)
		vendors.PUT("/:id", h.UpdateVendor)
		vendors.DELETE("/:id", h.DeleteVendor)
	}
}

// CreateMaterial handles POST /api/v1/materials
func (h *MasterDataHandler) CreateMaterial(c *gin.Context) {
	var material models.Material
	if err := c.ShouldBindJSON(&material); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateMaterial(c, actorFrom(c), &material); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// ListMaterials handles GET /api/v1/materials
func (h *MasterDataHandler) ListMaterials(c *gin.Context) {
	materials, err := h.service.ListMaterials(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterial handles GET /api/v1/materials/:id
func (h *MasterDataHandler) GetMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	material, err := h.service.GetMaterial(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// UpdateMaterial handles PUT /api/v1/materials/:id
func (h *MasterDataHandler) UpdateMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var material models.Material
	if err := c.ShouldBindJSON(&material); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	material.ID = id
	if err := h.service.UpdateMaterial(c, actorFrom(c), &material); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// DeleteMaterial handles DELETE /api/v1/materials/:id
func (h *MasterDataHandler) DeleteMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMaterial(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSite handles POST /api/v1/sites
func (h *MasterDataHandler) CreateSite(c *gin.Context) {
	var site models.CrusherSite
	if err := c.ShouldBindJSON(&site); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateSite(c, actorFrom(c), &site); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

// ListSites handles GET /api/v1/sites
func (h *MasterDataHandler) ListSites(c *gin.Context) {
	sites, err := h.service.ListSites(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sites)
}

// GetSite handles GET /api/v1/sites/:id
func (h *MasterDataHandler) GetSite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	site, err := h.service.GetSite(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// UpdateSite handles PUT /api/v1/sites/:id
func (h *MasterDataHandler) UpdateSite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var site models.CrusherSite
	if err := c.ShouldBindJSON(&site); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	site.ID = id
	if err := h.service.UpdateSite(c, actorFrom(c), &site); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

// DeleteSite handles DELETE /api/v1/sites/:id
func (h *MasterDataHandler) DeleteSite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSite(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LinkSiteMaterial handles POST /api/v1/sites/:id/materials/:materialId
func (h *MasterDataHandler) LinkSiteMaterial(c *gin.Context) {
	siteID, materialID, ok := siteMaterialParams(c)
	if !ok {
		return
	}
	if err := h.service.LinkSiteMaterial(c, actorFrom(c), siteID, materialID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlinkSiteMaterial handles DELETE /api/v1/sites/:id/materials/:materialId
func (h *MasterDataHandler) UnlinkSiteMaterial(c *gin.Context) {
	siteID, materialID, ok := siteMaterialParams(c)
	if !ok {
		return
	}
	if err := h.service.UnlinkSiteMaterial(c, actorFrom(c), siteID, materialID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func siteMaterialParams(c *gin.Context) (uint, uint, bool) {
	siteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid site id"})
		return 0, 0, false
	}
	materialID, err := strconv.ParseUint(c.Param("materialId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid material id"})
		return 0, 0, false
	}
	return uint(siteID), uint(materialID), true
}

// CreateCustomer handles POST /api/v1/customers
func (h *MasterDataHandler) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateCustomer(c, actorFrom(c), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// ListCustomers handles GET /api/v1/customers
func (h *MasterDataHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *MasterDataHandler) GetCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	customer, err := h.service.GetCustomer(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *MasterDataHandler) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer.ID = id
	if err := h.service.UpdateCustomer(c, actorFrom(c), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func (h *MasterDataHandler) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomer(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVendor handles POST /api/v1/vendors
func (h *MasterDataHandler) CreateVendor(c *gin.Context) {
	var vendor models.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateVendor(c, actorFrom(c), &vendor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

// ListVendors handles GET /api/v1/vendors
func (h *MasterDataHandler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// GetVendor handles GET /api/v1/vendors/:id
func (h *MasterDataHandler) GetVendor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	vendor, err := h.service.GetVendor(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// UpdateVendor handles PUT /api/v1/vendors/:id
func (h *MasterDataHandler) UpdateVendor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var vendor models.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vendor.ID = id
	if err := h.service.UpdateVendor(c, actorFrom(c), &vendor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// DeleteVendor handles DELETE /api/v1/vendors/:id
func (h *MasterDataHandler) DeleteVendor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVendor(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
