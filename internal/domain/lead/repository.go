package lead

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"leadcrm/internal/domain/document"
)

// Repository handles lead data access. Mutating methods respect the handle
// they were built with, so WithTx scopes a whole mutation to one
// transaction.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GetByID retrieves a live lead, nil when absent or soft-deleted.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Lead, error) {
	var l Lead
	tx := r.db.WithContext(ctx).First(&l, id)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &l, nil
}

// ExistsLive reports whether a non-deleted lead with the id exists.
func (r *Repository) ExistsLive(ctx context.Context, id int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Count(&count)
	return count > 0, tx.Error
}

func (r *Repository) Create(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save writes every mutable column, including NULLed ones. Update semantics
// are full replace: omitted optional fields are cleared, not preserved.
func (r *Repository) Save(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Model(l).Select(
		"name", "email", "phone",
		"company_name", "company_size", "company_website",
		"lead_status_id", "lead_channel_id", "lead_conversion_id",
		"budget", "time_line", "description", "deal_amount",
		"win_close_reason", "deal_close_date", "country_id",
		"updated_at",
	).Updates(l).Error
}

// ReplaceProductServices deletes all existing links and bulk-inserts the new
// set. No dedup: duplicates in ids produce duplicate rows, as the clients
// expect.
func (r *Repository) ReplaceProductServices(ctx context.Context, leadID int64, ids []int64) error {
	if err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Delete(&LeadProductService{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	links := make([]LeadProductService, len(ids))
	for i, id := range ids {
		links[i] = LeadProductService{LeadID: leadID, ProductServiceID: id}
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *Repository) DeleteProductServices(ctx context.Context, leadID int64) error {
	return r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Delete(&LeadProductService{}).Error
}

func (r *Repository) AddDocuments(ctx context.Context, docs []document.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&docs).Error
}

func (r *Repository) DocumentsByLead(ctx context.Context, leadID int64) ([]document.Document, error) {
	var docs []document.Document
	tx := r.db.WithContext(ctx).Where("lead_id = ?", leadID).Find(&docs)
	return docs, tx.Error
}

// DeleteDocuments removes the rows; blob cleanup is the caller's job.
func (r *Repository) DeleteDocuments(ctx context.Context, leadID int64) error {
	return r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Delete(&document.Document{}).Error
}

// SoftDelete logically removes the lead; history rows are untouched.
func (r *Repository) SoftDelete(ctx context.Context, l *Lead) error {
	return r.db.WithContext(ctx).Delete(l).Error
}

// UpdateClassification changes exactly one classification column.
func (r *Repository) UpdateClassification(ctx context.Context, leadID int64, column string, value int64) error {
	switch column {
	case "lead_status_id", "lead_channel_id", "lead_conversion_id":
	default:
		return errors.New("invalid classification column " + column)
	}
	return r.db.WithContext(ctx).Model(&Lead{}).
		Where("id = ?", leadID).
		Update(column, value).Error
}

// RecordHistory appends an immutable trail entry. There is intentionally no
// update or delete counterpart.
func (r *Repository) RecordHistory(ctx context.Context, leadID, companyUserID int64, description string) error {
	entry := LeadHistory{
		LeadID:        leadID,
		CompanyUserID: companyUserID,
		Description:   description,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *Repository) HistoryByLead(ctx context.Context, leadID int64) ([]LeadHistory, error) {
	var entries []LeadHistory
	tx := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("id").
		Find(&entries)
	return entries, tx.Error
}
