package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/backstage/services/crusher/internal/integrity"
)

// IntegrityHandler exposes the data integrity sweeps
type IntegrityHandler struct {
	checker *integrity.Checker
}

// NewIntegrityHandler creates a new integrity handler
func NewIntegrityHandler(checker *integrity.Checker) *IntegrityHandler {
	return &IntegrityHandler{checker: checker}
}

// RegisterRoutes registers the integrity routes
func (h *IntegrityHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/v1/integrity", h.Check)
}

// Check handles GET /api/v1/integrity. A clean sweep returns 200; findings
// come back with 409 so monitors can alert on the status alone.
func (h *IntegrityHandler) Check(c *gin.Context) {
	report, err := h.checker.Check(c)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !report.Clean() {
		status = http.StatusConflict
	}
	c.JSON(status, report)
}
