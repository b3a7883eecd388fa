package storefront

import (
	"net/http"

	"github.com/greenbean/storefront/internal/checkout"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/session"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/greenbean/storefront/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgCheckoutEmpty = "Your cart is empty. Please add some items before checkout."
	msgCartEmpty     = "Cart is empty"
	msgOrderPlaced   = "Order placed successfully!"
	msgOrderNotFound = "Order not found"
)

func (s *Storefront) registerCheckoutRoutes(ws *webserver.WebServer) {
	ws.GET("/checkout", s.checkoutPage)
	ws.POST("/checkout/process", s.processCheckout)
	ws.GET("/order-confirmation/:order_id", s.orderConfirmation)
	ws.GET("/my-orders", s.myOrders)
}

func (s *Storefront) checkoutPage(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	summary, err := s.checkout.Preview(st.Cart)
	if errors.Is(err, checkout.ErrEmptyCart) {
		st.AddFlash(session.FlashWarning, msgCheckoutEmpty)
		return s.redirect(c, st, http.StatusFound, "/cart")
	}
	if err != nil {
		return err
	}
	return s.render(c, st, "checkout", echo.Map{
		"title":           "Checkout - Green Bean",
		"cart_items":      st.Cart.Items(),
		"order_summary":   summary,
		"default_country": checkout.DefaultCountry,
	})
}

// processCheckout answers JSON clients with the order id and form clients with a redirect
func (s *Storefront) processCheckout(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	asJSON := webserver.IsJSONRequest(c)

	var payload checkoutPayload
	body, err := readPayload(c)
	if err == nil {
		err = weakDecode(body, &payload)
	}
	if err != nil {
		zap.L().Warn("unreadable checkout payload", zap.Error(err))
		if asJSON {
			return fail(c, http.StatusBadRequest, "Invalid checkout data")
		}
		st.AddFlash(session.FlashError, "Invalid checkout data")
		return s.redirect(c, st, http.StatusSeeOther, "/checkout")
	}

	order, err := s.checkout.Place(st.Cart, st.Orders, checkout.Request{
		Customer:      payload.customer(),
		PaymentMethod: payload.PaymentMethod,
	})
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		if asJSON {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": msgCartEmpty})
		}
		st.AddFlash(session.FlashError, msgCartEmpty)
		return s.redirect(c, st, http.StatusSeeOther, "/cart")
	case err != nil:
		zap.L().Error("checkout failed", zap.Error(err))
		if asJSON {
			return fail(c, http.StatusInternalServerError, webserver.MsgUnexpected)
		}
		st.AddFlash(session.FlashError, webserver.MsgUnexpected)
		return s.redirect(c, st, http.StatusSeeOther, "/checkout")
	}

	// the order and the emptied cart are written in one session save
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	recordOrder(order)

	url := checkout.ConfirmationURL(order.OrderID)
	if asJSON {
		return ok(c, msgOrderPlaced, echo.Map{"order_id": order.OrderID, "redirect_url": url})
	}
	st.AddFlash(session.FlashSuccess, msgOrderPlaced)
	return s.redirect(c, st, http.StatusSeeOther, url)
}

func recordOrder(order *domain.Order) {
	metrics.Inc(metrics.OrdersPlaced)
	metrics.Observe(metrics.OrderValue, order.OrderSummary.Total.InexactFloat64())
	zap.L().Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.Int("items", order.OrderSummary.ItemsCount),
		zap.String("total", order.OrderSummary.Total.StringFixed(2)))
}

func (s *Storefront) orderConfirmation(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	orderID := c.Param("order_id")
	order, found := st.Orders.FindByID(orderID)
	if !found {
		st.AddFlash(session.FlashError, msgOrderNotFound)
		return s.redirect(c, st, http.StatusFound, "/shop")
	}
	return s.render(c, st, "order_confirmation", echo.Map{
		"title": "Order Confirmation - " + order.OrderID,
		"order": order,
	})
}

// myOrders lists the history in placement order, or newest first with ?order=recent
func (s *Storefront) myOrders(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	orders := st.Orders.All()
	if c.QueryParam("order") == "recent" {
		orders = st.Orders.Recent()
	}
	return s.render(c, st, "my_orders", echo.Map{
		"title":  "My Orders - Green Bean",
		"orders": orders,
	})
}
