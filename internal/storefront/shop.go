package storefront

import (
	"net/http"
	"strconv"

	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/session"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const relatedLimit = 4

func (s *Storefront) registerShopRoutes(ws *webserver.WebServer) {
	ws.GET("/", s.home)
	ws.GET("/about", anchorRedirect("/#about"))
	ws.GET("/service", anchorRedirect("/#services"))
	ws.GET("/services", anchorRedirect("/#services"))
	ws.GET("/shop", s.shop)
	ws.GET("/products", s.shop)
	ws.GET("/shop/category/:category", s.category)
	ws.GET("/product/:id", s.product)
}

// the about and services sections live on the home page
func anchorRedirect(target string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, target)
	}
}

type categoryLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func categoryLinks() []categoryLink {
	links := make([]categoryLink, 0, len(domain.Categories))
	for _, slug := range domain.Categories {
		links = append(links, categoryLink{Slug: slug, Title: catalog.CategoryTitle(slug)})
	}
	return links
}

func (s *Storefront) home(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	products, err := s.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	var popular, arrivals []*domain.Product
	for _, p := range products {
		if p.IsPopular {
			popular = append(popular, p)
		}
		if p.IsNew {
			arrivals = append(arrivals, p)
		}
	}
	return s.render(c, st, "home", echo.Map{
		"title":        "Green Garden - Home",
		"popular":      popular,
		"new_arrivals": arrivals,
		"categories":   categoryLinks(),
	})
}

func (s *Storefront) shop(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	products, err := s.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return s.render(c, st, "shop", echo.Map{
		"title":           "Green Garden - Shop",
		"products":        products,
		"categories":      categoryLinks(),
		"category_filter": "",
	})
}

// category lists one category. An unknown category is an empty listing, not an error.
func (s *Storefront) category(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	category := c.Param("category")
	products, err := s.catalog.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return s.render(c, st, "shop", echo.Map{
		"title":           "Green Garden - " + catalog.CategoryTitle(category),
		"products":        products,
		"categories":      categoryLinks(),
		"category_filter": category,
	})
}

func (s *Storefront) product(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		st.AddFlash(session.FlashError, "Product not found")
		return s.redirect(c, st, http.StatusFound, "/shop")
	}
	p, err := s.catalog.GetByID(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		st.AddFlash(session.FlashError, "Product not found")
		return s.redirect(c, st, http.StatusFound, "/shop")
	}
	if err != nil {
		return err
	}
	siblings, err := s.catalog.ListByCategory(ctx, p.Category)
	if err != nil {
		return err
	}
	related := make([]*domain.Product, 0, relatedLimit)
	for _, sib := range siblings {
		if sib.ID != p.ID && len(related) < relatedLimit {
			related = append(related, sib)
		}
	}
	return s.render(c, st, "product", echo.Map{
		"title":   "Green Garden - " + p.Name,
		"product": p,
		"related": related,
	})
}
