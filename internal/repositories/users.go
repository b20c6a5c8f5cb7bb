package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
)

// UserRepository provides access to users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A duplicate email surfaces as gorm.ErrDuplicatedKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return errors.Wrap(err, "failed to create user")
}

// GetByID gets a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	return &user, nil
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}

// Update saves changes to a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	return errors.Wrap(err, "failed to update user")
}

// TouchLogin records a successful login time
func (r *UserRepository) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
	return errors.Wrap(err, "failed to record login time")
}

// AuditLogRepository writes and reads the append-only audit trail
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Append writes one audit entry
func (r *AuditLogRepository) Append(ctx context.Context, entry *models.UserAuditLog) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	return errors.Wrap(err, "failed to append audit log entry")
}

// ListByEntity returns the trail for one entity, newest first
func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.UserAuditLog, error) {
	var entries []models.UserAuditLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id DESC").Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit log entries")
	}
	return entries, nil
}

// PruneOlderThan deletes audit entries written before the cutoff and returns
// how many went away. Used by the retention job.
func (r *AuditLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.UserAuditLog{})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "failed to prune audit log")
	}
	return res.RowsAffected, nil
}
