// Package catalog provides read-only access to the products on sale.
package catalog

import (
	"context"
	"strings"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// ErrProductNotFound no product with the requested id
var ErrProductNotFound = errors.New("product not found")

// Repository product data access
type Repository interface {
	// List returns every product ordered by id
	List(ctx context.Context) ([]*domain.Product, error)

	// ListByCategory returns the products of one category; unknown categories yield an empty list
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)

	// GetByID returns ErrProductNotFound when the id is unknown
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

var categoryTitles = map[string]string{
	domain.CategoryIndoor:      "Indoor Plants",
	domain.CategoryOutdoor:     "Outdoor Plants",
	domain.CategoryAccessories: "Accessories",
	domain.CategoryPot:         "Pots & Planters",
}

// CategoryTitle display name of a category
func CategoryTitle(category string) string {
	if title, ok := categoryTitles[category]; ok {
		return title
	}
	return cases.Title(language.English).String(strings.ToLower(category))
}

// New opens the configured product source: memory (built-in products), csv or database.
func New(ctx context.Context, source, file string, db *gorm.DB) (Repository, error) {
	switch source {
	case "", "memory":
		products, err := DefaultProducts()
		if err != nil {
			return nil, err
		}
		return NewMemoryRepository(products), nil
	case "csv":
		products, err := LoadCSVFile(file)
		if err != nil {
			return nil, err
		}
		return NewMemoryRepository(products), nil
	case "database":
		if db == nil {
			return nil, errors.New("database catalog requires a database connection")
		}
		repo := NewGormRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		products, err := DefaultProducts()
		if err != nil {
			return nil, err
		}
		if _, err := repo.Seed(ctx, products); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, errors.Errorf("unknown catalog source %q", source)
	}
}
