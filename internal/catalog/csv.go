package catalog

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/pkg/errors"
)

//go:embed products.csv
var builtinProducts []byte

// DefaultProducts the built-in product list
func DefaultProducts() ([]*domain.Product, error) {
	return LoadCSV(bytes.NewReader(builtinProducts))
}

// LoadCSV reads products with a header row matching the csv tags of domain.Product
func LoadCSV(r io.Reader) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := gocsv.Unmarshal(r, &products); err != nil {
		return nil, errors.Wrap(err, "parse product csv")
	}
	seen := make(map[int64]struct{}, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if !domain.IsValidCategory(p.Category) {
			return nil, errors.Errorf("product %d: unknown category %q", p.ID, p.Category)
		}
		if p.Price.IsNegative() {
			return nil, errors.Errorf("product %d: negative price", p.ID)
		}
	}
	return products, nil
}

func LoadCSVFile(filename string) ([]*domain.Product, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open product csv")
	}
	defer f.Close()
	return LoadCSV(f)
}

// WriteCSV exports products in the format LoadCSV reads
func WriteCSV(w io.Writer, products []*domain.Product) error {
	return errors.Wrap(gocsv.Marshal(products, w), "write product csv")
}
