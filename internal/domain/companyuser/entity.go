package companyuser

import (
	"time"

	"gorm.io/gorm"

	"leadcrm/internal/domain/auth"
)

// CompanyUser is the company-scoped identity of an authenticated user. Every
// lead is owned by exactly one company user; the pair is the ownership
// comparator for all lead mutations.
type CompanyUser struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	CompanyID int64          `gorm:"column:company_id" json:"company_id"`
	UserID    int64          `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`

	User *auth.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CompanyUser) TableName() string { return "company_users" }
