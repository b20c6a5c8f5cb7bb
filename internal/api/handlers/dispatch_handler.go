package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/services"
)

// DispatchHandler serves outbound dispatch records
type DispatchHandler struct {
	service *services.DispatchService
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(service *services.DispatchService) *DispatchHandler {
	return &DispatchHandler{service: service}
}

// RegisterRoutes registers the dispatch routes
func (h *DispatchHandler) RegisterRoutes(router *gin.Engine) {
	dispatches := router.Group("/api/v1/dispatches")
	{
		dispatches.POST("", h.CreateDispatch)
		dispatches.GET("", h.ListDispatches)
		dispatches.GET("/:id", h.GetDispatch)
		dispatches.PUT("/:id", h.UpdateDispatch)
		dispatches.POST("/:id/delivered", h.MarkDelivered)
		dispatches.GET("/:id/transit-loss", h.TransitLoss)
		dispatches.DELETE("/:id", h.DeleteDispatch)
	}
}

// CreateDispatch handles POST /api/v1/dispatches
func (h *DispatchHandler) CreateDispatch(c *gin.Context) {
	var dispatch models.Dispatch
	if err := c.ShouldBindJSON(&dispatch); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateDispatch(c, actorFrom(c), &dispatch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dispatch)
}

// ListDispatches handles GET /api/v1/dispatches with an optional ?status= filter
func (h *DispatchHandler) ListDispatches(c *gin.Context) {
	dispatches, err := h.service.ListDispatches(c, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dispatches)
}

// GetDispatch handles GET /api/v1/dispatches/:id
func (h *DispatchHandler) GetDispatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dispatch, err := h.service.GetDispatch(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dispatch)
}

// UpdateDispatch handles PUT /api/v1/dispatches/:id
func (h *DispatchHandler) UpdateDispatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dispatch models.Dispatch
	if err := c.ShouldBindJSON(&dispatch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dispatch.ID = id
	if err := h.service.UpdateDispatch(c, actorFrom(c), &dispatch); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dispatch)
}

// DeliveredRequest carries the weighbridge reading for a completed delivery
type DeliveredRequest struct {
	DropQty     decimal.Decimal `json:"dropQty" binding:"required"`
	DeliveredAt *time.Time      `json:"deliveredAt"`
}

// MarkDelivered handles POST /api/v1/dispatches/:id/delivered
func (h *DispatchHandler) MarkDelivered(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req DeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deliveredAt := time.Now()
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}
	if err := h.service.MarkDelivered(c, actorFrom(c), id, req.DropQty, deliveredAt); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TransitLossResponse reports the weight difference across a delivery
type TransitLossResponse struct {
	DispatchID uint            `json:"dispatchId"`
	Loss       decimal.Decimal `json:"loss"`
	Known      bool            `json:"known"`
}

// TransitLoss handles GET /api/v1/dispatches/:id/transit-loss
func (h *DispatchHandler) TransitLoss(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	loss, known, err := h.service.TransitLoss(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TransitLossResponse{DispatchID: id, Loss: loss, Known: known})
}

// DeleteDispatch handles DELETE /api/v1/dispatches/:id
func (h *DispatchHandler) DeleteDispatch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDispatch(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
