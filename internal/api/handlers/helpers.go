package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/services"
)

// actorFrom builds the audit actor for a request. The user id comes from
// the X-User-Id header when present; the request id is taken from
// X-Request-Id or generated.
func actorFrom(c *gin.Context) services.Actor {
	actor := services.Actor{
		RequestID: uuid.New(),
		IPAddress: c.ClientIP(),
	}
	if raw := c.GetHeader("X-Request-Id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			actor.RequestID = id
		}
	}
	if raw := c.GetHeader("X-User-Id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			uid := uint(id)
			actor.UserID = &uid
		}
	}
	return actor
}

// idParam parses the :id path segment
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// respondError translates service and database errors into HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate value violates a unique constraint"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusConflict, gin.H{"error": "operation violates a relational constraint"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
