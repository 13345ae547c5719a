package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Reference catalogs leads are classified against. Rows are soft-deleted so
// historic leads keep resolvable classification ids.

// LeadStatus is the current pipeline stage taxonomy ("New", "Won", ...).
type LeadStatus struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Name      string         `gorm:"column:name" json:"name"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (LeadStatus) TableName() string { return "lead_statuses" }

// LeadChannel is the acquisition source taxonomy ("Website Forms", ...).
type LeadChannel struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Name      string         `gorm:"column:name" json:"name"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (LeadChannel) TableName() string { return "lead_channels" }

// LeadConversion is the pipeline step taxonomy ("Proposal Stage", ...).
type LeadConversion struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Name      string         `gorm:"column:name" json:"name"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (LeadConversion) TableName() string { return "lead_conversions" }

// ProductService is a catalog item a lead can be interested in.
type ProductService struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Name      string         `gorm:"column:name" json:"name"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (ProductService) TableName() string { return "product_services" }

// Country is phone-validation reference data keyed by the alpha-2 code.
type Country struct {
	ID               int64          `gorm:"column:id;primaryKey" json:"id"`
	Name             string         `gorm:"column:name" json:"name"`
	CountryCode      string         `gorm:"column:country_code" json:"country_code"` // dial prefix, e.g. "91"
	CountryCodeAlpha string         `gorm:"column:country_code_alpha;uniqueIndex" json:"country_code_alpha"`
	CreatedAt        time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`
}

func (Country) TableName() string { return "countries" }
