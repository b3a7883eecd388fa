package adminapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *api) registerProductRoutes(g *echo.Group) {
	g.GET("/products", a.listProducts)
	g.GET("/products/export.csv", a.exportProducts)
}

// whitelist of sortable fields
var productSorters = map[string]func(x, y *domain.Product) bool{
	"id":       func(x, y *domain.Product) bool { return x.ID < y.ID },
	"name":     func(x, y *domain.Product) bool { return strings.ToLower(x.Name) < strings.ToLower(y.Name) },
	"price":    func(x, y *domain.Product) bool { return x.Price.LessThan(y.Price) },
	"rating":   func(x, y *domain.Product) bool { return x.Rating < y.Rating },
	"category": func(x, y *domain.Product) bool { return x.Category < y.Category },
}

func (a *api) listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Filters: q matches part of the name, category is exact
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	category := strings.TrimSpace(c.QueryParam("category"))

	less, found := productSorters[strings.TrimSpace(c.QueryParam("sort"))]
	if !found {
		less = productSorters["id"]
	}
	desc := strings.EqualFold(strings.TrimSpace(c.QueryParam("order")), "DESC")

	var (
		products []*domain.Product
		err      error
	)
	if category != "" {
		products, err = a.catalog.ListByCategory(c.Request().Context(), category)
	} else {
		products, err = a.catalog.List(c.Request().Context())
	}
	if err != nil {
		zap.L().Error("list products", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to query products", err.Error())
	}

	rows := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		rows = append(rows, p)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})

	total := int64(len(rows))
	start := len(rows)
	if page-1 <= len(rows)/pageSize {
		start = (page - 1) * pageSize
	}
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

func (a *api) exportProducts(c echo.Context) error {
	products, err := a.catalog.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to query products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return catalog.WriteCSV(c.Response(), products)
}
