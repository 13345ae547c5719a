package companyuser

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the acting user has no company-user profile.
var ErrNotFound = errors.New("company user not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ResolveByUserID maps an authenticated user id to its company-user
// identity. Every lead operation starts here.
func (r *Repository) ResolveByUserID(ctx context.Context, userID int64) (*CompanyUser, error) {
	var cu CompanyUser
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cu)
	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &cu, nil
}

func (r *Repository) Create(ctx context.Context, cu *CompanyUser) error {
	return r.db.WithContext(ctx).Create(cu).Error
}
