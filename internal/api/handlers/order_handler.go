package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/services"
)

// OrderHandler serves sales and purchase orders
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(router *gin.Engine) {
	sales := router.Group("/api/v1/sales-orders")
	{
		sales.POST("", h.CreateSalesOrder)
		sales.GET("", h.ListSalesOrders)
		sales.GET("/:id", h.GetSalesOrder)
		sales.PUT("/:id", h.UpdateSalesOrder)
		sales.DELETE("/:id", h.DeleteSalesOrder)
	}

	purchases := router.Group("/api/v1/purchase-orders")
	{
		purchases.POST("", h.CreatePurchaseOrder)
		purchases.GET("", h.ListPurchaseOrders)
		purchases.GET("/:id", h.GetPurchaseOrder)
		purchases.PUT("/:id/status", h.UpdatePurchaseOrderStatus)
		purchases.DELETE("/:id", h.DeletePurchaseOrder)
	}
}

// CreateSalesOrder handles POST /api/v1/sales-orders
func (h *OrderHandler) CreateSalesOrder(c *gin.Context) {
	var order models.SalesOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreateSalesOrder(c, actorFrom(c), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListSalesOrders handles GET /api/v1/sales-orders
func (h *OrderHandler) ListSalesOrders(c *gin.Context) {
	orders, err := h.service.ListSalesOrders(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetSalesOrder handles GET /api/v1/sales-orders/:id
func (h *OrderHandler) GetSalesOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.service.GetSalesOrder(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateSalesOrder handles PUT /api/v1/sales-orders/:id
func (h *OrderHandler) UpdateSalesOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var order models.SalesOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order.ID = id
	if err := h.service.UpdateSalesOrder(c, actorFrom(c), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteSalesOrder handles DELETE /api/v1/sales-orders/:id
func (h *OrderHandler) DeleteSalesOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSalesOrder(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders
func (h *OrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var order models.PurchaseOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		log.Error().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.CreatePurchaseOrder(c, actorFrom(c), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders
func (h *OrderHandler) ListPurchaseOrders(c *gin.Context) {
	orders, err := h.service.ListPurchaseOrders(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetPurchaseOrder handles GET /api/v1/purchase-orders/:id
func (h *OrderHandler) GetPurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.service.GetPurchaseOrder(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PurchaseOrderStatusRequest carries a purchase order status transition
type PurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePurchaseOrderStatus handles PUT /api/v1/purchase-orders/:id/status
func (h *OrderHandler) UpdatePurchaseOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req PurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := models.ParsePurchaseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdatePurchaseOrderStatus(c, actorFrom(c), id, status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePurchaseOrder handles DELETE /api/v1/purchase-orders/:id
func (h *OrderHandler) DeletePurchaseOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeletePurchaseOrder(c, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
