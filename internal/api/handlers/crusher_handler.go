package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/services"
)

// CrusherHandler serves machines and production runs
type CrusherHandler struct {
	service *services.CrusherService
}

// NewCrusherHandler creates a new crusher handler
func NewCrusherHandler(service *services.CrusherService) *CrusherHandler {
	return &CrusherHandler{service: service}
}

// RegisterRoutes registers the crusher routes
func (h *CrusherHandler) RegisterRoutes(router *gin.Engine) {
	machines := router.Group("/api/v1/machines")
	{
		machines.POST("", h.CreateMachine)
		machines.GET("", h.ListMachines)
		machines.GET("/:id", h.GetMachine)
		machines.PUT("/:id/status", h.UpdateMachineStatus)
	}

	runs := router.Group("/api/v1/runs")
	{
		runs.POST("", h.CreateRun)
		runs.GET("", h.ListRuns)
		runs.GET("/:id", h.GetRun)
		runs.PUT("/:id", h.UpdateRun)
		runs.DELETE("/:id", h.DeleteRun)
	}
}

// CreateMachine handles POST /api/v1/machines
func (h *CrusherHandler) CreateMachine(c *gin.Context) {
	var machine models.CrusherMachine
	if err := c.ShouldBindJSON(&machine); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateMachine(c, actorFrom(c), &machine); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, machine)
}

// ListMachines handles GET /api/v1/machines
func (h *CrusherHandler) ListMachines(c *gin.Context) {
	machines, err := h.service.ListMachines(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachine handles GET /api/v1/machines/:id
func (h *CrusherHandler) GetMachine(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	machine, err := h.service.GetMachine(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, machine)
}

// MachineStatusRequest carries a machine status transition
type MachineStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateMachineStatus handles PUT /api/v1/machines/:id/status
func (h *CrusherHandler) UpdateMachineStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req MachineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.ParseMachineStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdateMachineStatus(c, actorFrom(c), id, status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRun handles POST /api/v1/runs
func (h *CrusherHandler) CreateRun(c *gin.Context) {
	var run models.CrusherRun
	if err := c.ShouldBindJSON(&run); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateRun(c, actorFrom(c), &run); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// ListRuns handles GET /api/v1/runs
func (h *CrusherHandler) ListRuns(c *gin.Context) {
	runs, err := h.service.ListRuns(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetRun handles GET /api/v1/runs/:id
func (h *CrusherHandler) GetRun(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	run, err := h.service.GetRun(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// UpdateRun handles PUT /api/v1/runs/:id
func (h *CrusherHandler) UpdateRun(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var run models.CrusherRun
	if err := c.ShouldBindJSON(&run); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	run.ID = id
	if err := h.service.UpdateRun(c, actorFrom(c), &run); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// DeleteRun handles DELETE /api/v1/runs/:id
func (h *CrusherHandler) DeleteRun(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRun(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
