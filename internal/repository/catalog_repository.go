package repository

import (
	"context"

	"gorm.io/gorm"
)

// CatalogRepository persists one kind of catalog entry (resources or volunteer opportunities).
// Listings are ordered by category, then title.
type CatalogRepository[T any] interface {
	ListActive(ctx context.Context) ([]T, error)
	ListActiveByCategory(ctx context.Context, category string) ([]T, error)
	ListAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
}

type catalogRepository[T any] struct {
	db *gorm.DB
}

// NewCatalogRepository creates a GORM-backed catalog repository for T.
func NewCatalogRepository[T any](db *gorm.DB) CatalogRepository[T] {
	return &catalogRepository[T]{db: db}
}

func (r *catalogRepository[T]) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("category ASC").Order("title ASC").Order("id ASC")
}

func (r *catalogRepository[T]) ListActive(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.ordered(ctx).Where("is_active = ?", true).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository[T]) ListActiveByCategory(ctx context.Context, category string) ([]T, error) {
	items := []T{}
	err := r.ordered(ctx).
		Where("is_active = ?", true).
		Where("category = ?", category).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.ordered(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete hard-deletes an entry. gorm.ErrRecordNotFound is returned when no row matched.
func (r *catalogRepository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
