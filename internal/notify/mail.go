package notify

import (
	"context"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Mail sends the alert by SMTP
type Mail struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMail(host string, port int, username, password, from, to string) *Mail {
	return &Mail{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (m *Mail) Name() string {
	return "mail"
}

func (m *Mail) Send(ctx context.Context, msg domain.ContactMessage) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", m.to)
	message.SetHeader("Reply-To", msg.Email)
	message.SetHeader("Subject", "New contact form submission from "+msg.Name)
	message.SetBody("text/html", "<pre>"+FormatHTML(msg)+"</pre>")

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(message)
	}()
	select {
	case err := <-done:
		if err != nil {
			return &DeliveryError{Channel: m.Name(), Err: errors.Wrap(err, "smtp send")}
		}
		return nil
	case <-ctx.Done():
		return &DeliveryError{Channel: m.Name(), Err: ctx.Err()}
	}
}
