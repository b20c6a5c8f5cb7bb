package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/crusher/internal/models"
)

// ErrValidation marks every rejection of caller-supplied input. Handlers
// match it with errors.Is to pick the response status, so the sentinel is
// the only signal; message text never is.
var ErrValidation = errors.New("validation failed")

func validationErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

// Actor identifies who performed an operation, for the audit trail
type Actor struct {
	UserID    *uint
	RequestID uuid.UUID
	IPAddress string
}

// auditStore is the slice of the audit repository the services need
type auditStore interface {
	Append(ctx context.Context, entry *models.UserAuditLog) error
}

// recordAudit writes one audit entry. The trail is best-effort from the
// caller's point of view: a failed append is logged, not propagated, so an
// audit outage cannot block business writes.
func recordAudit(ctx context.Context, audit auditStore, actor Actor, action models.AuditAction, entityType string, entityID uint, changes interface{}) {
	if audit == nil {
		return
	}
	var payload []byte
	if changes != nil {
		var err error
		payload, err = json.Marshal(changes)
		if err != nil {
			log.Warn().Err(err).Str("entity", entityType).Msg("Failed to marshal audit payload")
		}
	}
	entry := &models.UserAuditLog{
		UserID:     actor.UserID,
		RequestID:  actor.RequestID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    payload,
		IPAddress:  actor.IPAddress,
	}
	if err := audit.Append(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("entity", entityType).
			Uint("entity_id", entityID).
			Msg("Failed to append audit log entry")
	}
}
