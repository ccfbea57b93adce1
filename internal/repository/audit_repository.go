package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
)

// AuditRepository appends and reads user audit rows. Rows are never updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.UserAudit) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.UserAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.UserAudit) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUser returns the newest audit rows about userID.
func (r *auditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.UserAudit, error) {
	var entries []model.UserAudit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
