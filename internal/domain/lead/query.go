package lead

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PerPage is the fixed listing page size.
const PerPage = 10

// ListQuery carries the optional listing filters. Zero values mean "not
// supplied"; the date pair and the order pair only take effect when both
// halves are present.
type ListQuery struct {
	StartDate *time.Time
	EndDate   *time.Time

	StatusID     int64
	ChannelID    int64
	ConversionID int64

	Search string

	OrderBy   OrderBy
	SortOrder SortOrder

	Page int
}

// Page is the paginator shape the clients consume.
type Page struct {
	CurrentPage int    `json:"current_page"`
	Data        []Lead `json:"data"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
}

// List returns one page of the owner's leads with all expansions loaded.
// Filters combine with AND; results are deterministic for a fixed query
// because the lead id always breaks ties.
func (r *Repository) List(ctx context.Context, ownerID int64, q ListQuery) (*Page, error) {
	base := r.db.WithContext(ctx).Model(&Lead{}).
		Where("leads.company_user_id = ?", ownerID)

	// both bounds or no date filter at all
	if q.StartDate != nil && q.EndDate != nil {
		base = base.
			Where("leads.created_at >= ?", q.StartDate.Truncate(24*time.Hour)).
			Where("leads.created_at < ?", q.EndDate.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	if q.StatusID > 0 {
		base = base.Where("leads.lead_status_id = ?", q.StatusID)
	}
	if q.ChannelID > 0 {
		base = base.Where("leads.lead_channel_id = ?", q.ChannelID)
	}
	if q.ConversionID > 0 {
		base = base.Where("leads.lead_conversion_id = ?", q.ConversionID)
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		base = base.Where(
			"leads.name LIKE ? OR leads.email LIKE ? OR leads.phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	base = applyOrder(base, q)

	page := q.Page
	if page < 1 {
		page = 1
	}

	var leads []Lead
	err := base.
		Preload("LeadStatus").
		Preload("LeadChannel").
		Preload("LeadConversion").
		Preload("ProductServices.ProductService").
		Preload("CompanyUser.User").
		Preload("Documents").
		Limit(PerPage).
		Offset((page - 1) * PerPage).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}

	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	return &Page{
		CurrentPage: page,
		Data:        leads,
		LastPage:    lastPage,
		PerPage:     PerPage,
		Total:       total,
	}, nil
}

// applyOrder sorts only when both order_by and sort_order were supplied,
// otherwise insertion order applies. Ordering by owner sorts on the owning
// user's display name and needs the identity joins.
func applyOrder(q *gorm.DB, query ListQuery) *gorm.DB {
	if query.OrderBy == 0 || query.SortOrder == 0 {
		return q.Order("leads.id")
	}

	dir := "ASC"
	if query.SortOrder == SortDesc {
		dir = "DESC"
	}

	var column string
	switch query.OrderBy {
	case OrderByCreatedAt:
		column = "leads.created_at"
	case OrderByName:
		column = "leads.name"
	case OrderByEmail:
		column = "leads.email"
	case OrderByOwner:
		column = "users.name"
		q = q.Joins("JOIN company_users ON company_users.id = leads.company_user_id").
			Joins("JOIN users ON users.id = company_users.user_id")
	default:
		return q.Order("leads.id")
	}

	return q.Order(column + " " + dir).Order("leads.id")
}
