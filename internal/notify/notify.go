// Package notify forwards contact form messages to the shop operators.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/greenbean/storefront/internal/domain"
)

// Notifier delivers a contact message to one operator channel
type Notifier interface {
	Name() string
	Send(ctx context.Context, msg domain.ContactMessage) error
}

// DeliveryError a message could not be delivered
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// FormatHTML renders the operator alert. User input is escaped.
func FormatHTML(msg domain.ContactMessage) string {
	host := msg.Host
	if host == "" {
		host = "Unknown"
	}
	var sb strings.Builder
	sb.WriteString("🌱 <b>New Contact Form Submission</b> 🌱\n\n")
	sb.WriteString("👤 <b>Name:</b> " + html.EscapeString(msg.Name) + "\n")
	sb.WriteString("📧 <b>Email:</b> " + html.EscapeString(msg.Email) + "\n\n")
	sb.WriteString("💬 <b>Message:</b>\n" + html.EscapeString(msg.Message) + "\n\n")
	sb.WriteString("⏰ <b>Received at:</b> " + html.EscapeString(host))
	if !msg.ReceivedAt.IsZero() {
		sb.WriteString(" (" + msg.ReceivedAt.Format("2006-01-02 15:04:05") + ")")
	}
	sb.WriteString("\n")
	return sb.String()
}
