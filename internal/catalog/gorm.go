package catalog

import (
	"context"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormRepository products stored in the shop_product table
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the catalog tables
func (r *GormRepository) Migrate() error {
	return errors.Wrap(r.db.Migrator().AutoMigrate(domain.Tables...), "migrate catalog")
}

// Seed inserts products when the table is empty and returns how many were written
func (r *GormRepository) Seed(ctx context.Context, products []*domain.Product) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	if count > 0 || len(products) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(products, 100).Error; err != nil {
		return 0, errors.Wrap(err, "seed products")
	}
	zap.L().Info("seeded product catalog", zap.Int("products", len(products)))
	return len(products), nil
}

func (r *GormRepository) List(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, errors.Wrap(err, "list products")
}

func (r *GormRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0)
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&products).Error
	return products, errors.Wrap(err, "list products by category")
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	return &product, nil
}
