package lead

import (
	"time"

	"gorm.io/gorm"

	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/companyuser"
	"leadcrm/internal/domain/document"
)

// OrderBy selects the listing sort column. Wire values are fixed integers
// the mobile clients send.
type OrderBy int64

const (
	OrderByCreatedAt OrderBy = 1
	OrderByName      OrderBy = 2
	OrderByEmail     OrderBy = 3
	OrderByOwner     OrderBy = 4 // owning user's display name
)

// SortOrder selects the listing direction.
type SortOrder int64

const (
	SortAsc  SortOrder = 1
	SortDesc SortOrder = 2
)

// StatusUpdateKind selects which single classification field a status-type
// update changes.
type StatusUpdateKind int64

const (
	KindStatus     StatusUpdateKind = 1
	KindChannel    StatusUpdateKind = 2
	KindConversion StatusUpdateKind = 3
)

// Lead is a prospect record. Contact requires a name and at least one of
// email or phone; a phone always carries a resolved country. Leads are
// soft-deleted and mutated only by their owning company user.
type Lead struct {
	ID            int64 `gorm:"column:id;primaryKey" json:"id"`
	CompanyUserID int64 `gorm:"column:company_user_id;index" json:"company_user_id"`

	Name  string  `gorm:"column:name" json:"name"`
	Email *string `gorm:"column:email" json:"email"`
	Phone *string `gorm:"column:phone" json:"phone"`

	CompanyName    *string `gorm:"column:company_name" json:"company_name"`
	CompanySize    *string `gorm:"column:company_size" json:"company_size"`
	CompanyWebsite *string `gorm:"column:company_website" json:"company_website"`

	LeadStatusID     int64 `gorm:"column:lead_status_id" json:"lead_status_id"`
	LeadChannelID    int64 `gorm:"column:lead_channel_id" json:"lead_channel_id"`
	LeadConversionID int64 `gorm:"column:lead_conversion_id" json:"lead_conversion_id"`

	Budget         *string  `gorm:"column:budget" json:"budget"`
	TimeLine       *string  `gorm:"column:time_line" json:"time_line"`
	Description    *string  `gorm:"column:description" json:"description"`
	DealAmount     *float64 `gorm:"column:deal_amount" json:"deal_amount"`
	WinCloseReason *string  `gorm:"column:win_close_reason" json:"win_close_reason"`
	DealCloseDate  *string  `gorm:"column:deal_close_date" json:"deal_close_date"` // YYYY-MM-DD

	CountryID *int64 `gorm:"column:country_id" json:"country_id"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at" json:"deleted_at"`

	LeadStatus      *catalog.LeadStatus       `gorm:"foreignKey:LeadStatusID" json:"lead_status,omitempty"`
	LeadChannel     *catalog.LeadChannel      `gorm:"foreignKey:LeadChannelID" json:"lead_channel,omitempty"`
	LeadConversion  *catalog.LeadConversion   `gorm:"foreignKey:LeadConversionID" json:"lead_conversion,omitempty"`
	ProductServices []LeadProductService      `gorm:"foreignKey:LeadID" json:"product_services,omitempty"`
	CompanyUser     *companyuser.CompanyUser  `gorm:"foreignKey:CompanyUserID" json:"company_user,omitempty"`
	Documents       []document.Document       `gorm:"foreignKey:LeadID" json:"documents,omitempty"`
}

func (Lead) TableName() string { return "leads" }

// LeadProductService joins a lead to a product/service catalog entry. The
// whole set is replaced on every update that supplies a list.
type LeadProductService struct {
	ID               int64 `gorm:"column:id;primaryKey" json:"id"`
	LeadID           int64 `gorm:"column:lead_id;index" json:"lead_id"`
	ProductServiceID int64 `gorm:"column:product_service_id" json:"product_service_id"`

	ProductService *catalog.ProductService `gorm:"foreignKey:ProductServiceID" json:"product_service,omitempty"`
}

func (LeadProductService) TableName() string { return "lead_product_services" }

// LeadHistory is an append-only audit trail entry for one lead. Entries are
// never updated or deleted and survive the lead's soft delete.
type LeadHistory struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	LeadID        int64     `gorm:"column:lead_id;index" json:"lead_id"`
	CompanyUserID int64     `gorm:"column:company_user_id" json:"company_user_id"`
	Description   string    `gorm:"column:description" json:"description"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (LeadHistory) TableName() string { return "lead_histories" }
