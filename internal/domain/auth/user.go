package auth

import (
	"time"

	"gorm.io/gorm"
)

// User roles on the wire. Role 1 is the panel super admin, role 2 a company
// account; only company accounts own leads.
const (
	RoleAdmin   = 1
	RoleCompany = 2
)

type User struct {
	ID              int64          `gorm:"column:id;primaryKey" json:"id"`
	Name            string         `gorm:"column:name" json:"name"`
	Email           string         `gorm:"column:email;uniqueIndex" json:"email"`
	EmailVerifiedAt *time.Time     `gorm:"column:email_verified_at" json:"email_verified_at"`
	PasswordHash    string         `gorm:"column:password" json:"-"`
	UserRole        int            `gorm:"column:user_role" json:"user_role"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (User) TableName() string { return "users" }
