package storefront

import (
	"net/http"
	"strconv"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (s *Storefront) registerCartRoutes(ws *webserver.WebServer) {
	ws.GET("/cart", s.cartPage)
	ws.POST("/sync-cart", s.syncCart)
	ws.POST("/add-to-cart", s.addToCart)
	ws.POST("/remove-from-cart/:item_id", s.removeFromCart)
}

func (s *Storefront) cartPage(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	items := st.Cart.Items()
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return s.render(c, st, "cart", echo.Map{
		"title":       "Green Bean - Cart",
		"cart_items":  items,
		"total":       st.Cart.Total(),
		"items_count": count,
	})
}

// syncCart replaces the session cart with the client side copy. Unreadable lines are skipped.
func (s *Storefront) syncCart(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	body, err := readPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid cart data")
	}
	raw, err := cartItemsList(body["cart_items"])
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid cart data")
	}
	items := make([]domain.CartLineItem, 0, len(raw))
	for _, r := range raw {
		p, err := decodeCartItem(r)
		if err != nil {
			zap.L().Debug("skipping cart line", zap.Error(err))
			continue
		}
		items = append(items, p.lineItem())
	}
	st.Cart.Sync(items)
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	return ok(c, "Cart synced successfully", echo.Map{"cart_count": st.Cart.Len()})
}

func (s *Storefront) addToCart(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	body, err := readPayload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid item data")
	}
	p, err := decodeCartItem(body)
	if err != nil || p.ID <= 0 {
		return fail(c, http.StatusBadRequest, "Invalid item data")
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return fail(c, http.StatusBadRequest, "Quantity must be at least 1")
	}
	st.Cart.Add(p.lineItem())
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	return ok(c, "Item added to cart", echo.Map{"cart_count": st.Cart.Len()})
}

func (s *Storefront) removeFromCart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		return echo.ErrNotFound
	}
	st, err := s.state(c)
	if err != nil {
		return err
	}
	st.Cart.Remove(id)
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	return ok(c, "Item removed from cart", echo.Map{"cart_count": st.Cart.Len()})
}
