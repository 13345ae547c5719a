package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Kind names one reference catalog.
type Kind string

const (
	KindStatus         Kind = "lead_status"
	KindChannel        Kind = "lead_channel"
	KindConversion     Kind = "lead_conversion"
	KindProductService Kind = "product_service"
)

var ErrUnknownKind = errors.New("unknown catalog kind")

// Repository answers exists/list/name lookups against the reference
// catalogs. Soft-deleted rows never match.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func modelFor(kind Kind) (any, bool) {
	switch kind {
	case KindStatus:
		return &LeadStatus{}, true
	case KindChannel:
		return &LeadChannel{}, true
	case KindConversion:
		return &LeadConversion{}, true
	case KindProductService:
		return &ProductService{}, true
	default:
		return nil, false
	}
}

// Exists reports whether a live row with the given id exists in the catalog.
func (r *Repository) Exists(ctx context.Context, kind Kind, id int64) (bool, error) {
	model, ok := modelFor(kind)
	if !ok {
		return false, ErrUnknownKind
	}
	var count int64
	tx := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count)
	return count > 0, tx.Error
}

// AllExist reports whether every id matches a live catalog row.
func (r *Repository) AllExist(ctx context.Context, kind Kind, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	model, ok := modelFor(kind)
	if !ok {
		return false, ErrUnknownKind
	}
	var count int64
	tx := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	distinct := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	return count == int64(len(distinct)), nil
}

// NameTaken reports whether name is used by a live row other than excludeID.
func (r *Repository) NameTaken(ctx context.Context, kind Kind, name string, excludeID int64) (bool, error) {
	model, ok := modelFor(kind)
	if !ok {
		return false, ErrUnknownKind
	}
	var count int64
	q := r.db.WithContext(ctx).Model(model).Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	tx := q.Count(&count)
	return count > 0, tx.Error
}

func (r *Repository) Create(ctx context.Context, kind Kind, name string) error {
	switch kind {
	case KindStatus:
		return r.db.WithContext(ctx).Create(&LeadStatus{Name: name}).Error
	case KindChannel:
		return r.db.WithContext(ctx).Create(&LeadChannel{Name: name}).Error
	case KindConversion:
		return r.db.WithContext(ctx).Create(&LeadConversion{Name: name}).Error
	case KindProductService:
		return r.db.WithContext(ctx).Create(&ProductService{Name: name}).Error
	default:
		return ErrUnknownKind
	}
}

func (r *Repository) Rename(ctx context.Context, kind Kind, id int64, name string) error {
	model, ok := modelFor(kind)
	if !ok {
		return ErrUnknownKind
	}
	return r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update("name", name).Error
}

func (r *Repository) Statuses(ctx context.Context) ([]LeadStatus, error) {
	var out []LeadStatus
	tx := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, tx.Error
}

func (r *Repository) Channels(ctx context.Context) ([]LeadChannel, error) {
	var out []LeadChannel
	tx := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, tx.Error
}

func (r *Repository) Conversions(ctx context.Context) ([]LeadConversion, error) {
	var out []LeadConversion
	tx := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, tx.Error
}

func (r *Repository) ProductServices(ctx context.Context) ([]ProductService, error) {
	var out []ProductService
	tx := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, tx.Error
}

// CountryByAlpha resolves a country by its alpha-2 code, nil when absent.
func (r *Repository) CountryByAlpha(ctx context.Context, alpha string) (*Country, error) {
	var c Country
	tx := r.db.WithContext(ctx).Where("country_code_alpha = ?", alpha).First(&c)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}
