package storefront

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/greenbean/storefront/internal/notify"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/greenbean/storefront/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	msgFieldsRequired = "All fields are required!"
	msgInvalidEmail   = "Please enter a valid email address!"
	msgContactSent    = "Thank you! Your message has been sent successfully. We'll get back to you soon!"
	msgContactFailed  = "Sorry, there was an error sending your message. Please try again later."
)

func (s *Storefront) registerContactRoutes(ws *webserver.WebServer) {
	ws.GET("/contact", s.contactPage)
	ws.POST("/contact", s.submitContact)
}

func (s *Storefront) contactPage(c echo.Context) error {
	st, err := s.state(c)
	if err != nil {
		return err
	}
	return s.render(c, st, "contact", echo.Map{"title": "Green Garden - Contact Us"})
}

func (s *Storefront) submitContact(c echo.Context) error {
	var msg domain.ContactMessage
	body, err := readPayload(c)
	if err == nil {
		err = weakDecode(body, &msg)
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, msgFieldsRequired)
	}
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := c.Validate(&msg); err != nil {
		for _, tag := range webserver.FailedTags(err) {
			if tag == "required" {
				return fail(c, http.StatusBadRequest, msgFieldsRequired)
			}
		}
		return fail(c, http.StatusBadRequest, msgInvalidEmail)
	}
	msg.Host = c.Request().Host
	msg.ReceivedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.notifyTimeout)
	defer cancel()
	err = s.notifier.Send(ctx, msg)
	channel := tstorage.Label{Name: "channel", Value: s.notifier.Name()}
	if err != nil {
		metrics.Inc(metrics.ContactFailed, channel)
		var de *notify.DeliveryError
		if errors.As(err, &de) {
			zap.L().Warn("contact delivery failed", zap.String("channel", de.Channel), zap.Error(de.Err))
			return fail(c, http.StatusInternalServerError, msgContactFailed)
		}
		zap.L().Error("contact form error", zap.Error(err))
		return fail(c, http.StatusInternalServerError, webserver.MsgUnexpected)
	}
	metrics.Inc(metrics.ContactDelivered, channel)
	return ok(c, msgContactSent, nil)
}
