package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hijabstore/internal/model"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	Upsert(ctx context.Context, products []model.Product) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Search matches keyword as a substring of the category or the name. Case
// rules are whatever the column collation says. An empty keyword matches all.
func (r *productRepository) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	term := "%" + keyword + "%"
	products := make([]model.Product, 0)
	if err := r.db.WithContext(ctx).
		Where("kategori LIKE ? OR nama LIKE ?", term, term).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Upsert inserts products, overwriting rows that share a primary key.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(products, 100).Error
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}
