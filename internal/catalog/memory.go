package catalog

import (
	"context"

	"github.com/google/btree"
	"github.com/greenbean/storefront/internal/domain"
)

// MemoryRepository products held in an id-ordered btree. Read-only after construction.
type MemoryRepository struct {
	tree *btree.BTreeG[domain.Product]
}

func NewMemoryRepository(products []*domain.Product) *MemoryRepository {
	tree := btree.NewG(8, func(a, b domain.Product) bool { return a.ID < b.ID })
	for _, p := range products {
		tree.ReplaceOrInsert(*p)
	}
	return &MemoryRepository{tree: tree}
}

func (r *MemoryRepository) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, r.tree.Len())
	r.tree.Ascend(func(p domain.Product) bool {
		out = append(out, &p)
		return true
	})
	return out, nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, category string) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0)
	r.tree.Ascend(func(p domain.Product) bool {
		if p.Category == category {
			out = append(out, &p)
		}
		return true
	})
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.tree.Get(domain.Product{ID: id})
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Len() int {
	return r.tree.Len()
}
