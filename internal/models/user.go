package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator of the system
type User struct {
	Model
	Email       string     `json:"email" gorm:"column:email;uniqueIndex:uq_users_email;not null" binding:"required,email"`
	Name        string     `json:"name" gorm:"column:name"`
	Role        UserRole   `json:"role" gorm:"column:role;type:user_role;default:'STAFF'"`
	LastLoginAt *time.Time `json:"lastLoginAt" gorm:"column:last_login_at"`
	Active      bool       `json:"active" gorm:"column:active;not null;default:true"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// UserAuditLog is one append-only entry in the audit trail. The user
// reference is SET NULL so the trail outlives deleted accounts.
type UserAuditLog struct {
	Model
	UserID     *uint       `json:"userId" gorm:"column:user_id"`
	RequestID  uuid.UUID   `json:"requestId" gorm:"column:request_id;type:uuid"`
	Action     AuditAction `json:"action" gorm:"column:action;type:user_audit_action;not null"`
	EntityType string      `json:"entityType" gorm:"column:entity_type;not null"`
	EntityID   uint        `json:"entityId" gorm:"column:entity_id"`
	Changes    []byte      `json:"changes" gorm:"column:changes;type:jsonb"`
	IPAddress  string      `json:"ipAddress" gorm:"column:ip_address"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName overrides the table name
func (UserAuditLog) TableName() string {
	return "user_audit_logs"
}
