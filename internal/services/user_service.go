package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/repositories"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	TouchLogin(ctx context.Context, id uint, at time.Time) error
}

type auditReader interface {
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.UserAuditLog, error)
}

// UserService manages application users and their audit trail
type UserService struct {
	userRepo   userStore
	audit      auditStore
	auditQuery auditReader
}

// NewUserService creates the user service over a database handle
func NewUserService(db *gorm.DB) *UserService {
	auditRepo := repositories.NewAuditLogRepository(db)
	return &UserService{
		userRepo:   repositories.NewUserRepository(db),
		audit:      auditRepo,
		auditQuery: auditRepo,
	}
}

// CreateUser registers a user, defaulting the role to STAFF
func (s *UserService) CreateUser(ctx context.Context, actor Actor, user *models.User) error {
	if user.Email == "" {
		return validationErrorf("user email is required")
	}
	if user.Role == "" {
		user.Role = models.UserRoleStaff
	}
	if !user.Role.Valid() {
		return validationErrorf("invalid user role %q", user.Role)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "user", user.ID, user)
	return nil
}

// GetUser gets a user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByEmail gets a user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser saves user changes. An unset role defaults to STAFF, same as
// on create.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, user *models.User) error {
	if user.Role == "" {
		user.Role = models.UserRoleStaff
	}
	if !user.Role.Valid() {
		return validationErrorf("invalid user role %q", user.Role)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "user", user.ID, user)
	return nil
}

// RecordLogin stamps the user's last login time and appends a LOGIN entry
// to the audit trail
func (s *UserService) RecordLogin(ctx context.Context, actor Actor, id uint, at time.Time) error {
	if err := s.userRepo.TouchLogin(ctx, id, at); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionLogin, "user", id, nil)
	return nil
}

// AuditTrail returns the audit entries recorded against an entity, newest
// first
func (s *UserService) AuditTrail(ctx context.Context, entityType string, entityID uint) ([]models.UserAuditLog, error) {
	return s.auditQuery.ListByEntity(ctx, entityType, entityID)
}
