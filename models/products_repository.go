package models

import (
	"context"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Products returns the whole catalog ordered by id.
func (r *ProductsRepository) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

