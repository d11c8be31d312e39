package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/phenrril/productcatalog/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

var _ domain.CatalogStore = (*CatalogRepo)(nil)

func (r *CatalogRepo) ProductExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("name = ?", name).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogRepo) ListProducts(ctx context.Context, t domain.ProductType) ([]domain.Product, error) {
	var list []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Tags").
		Preload("Materials", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Food.Customer").
		Preload("Food.Allergens").
		Preload("Textile").
		Where("type = ?", t).
		Order("id asc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogRepo) Assemble(ctx context.Context, fn func(tx domain.AssemblyTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&assemblyTx{db: tx})
	})
}

func (r *CatalogRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
