package notify

import (
	"context"

	"github.com/greenbean/storefront/internal/domain"
	"go.uber.org/zap"
)

// Log writes messages to the application log, used when no channel is configured
type Log struct{}

func (Log) Name() string {
	return "log"
}

func (Log) Send(_ context.Context, msg domain.ContactMessage) error {
	zap.L().Info("contact form submission",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("host", msg.Host),
		zap.String("message", msg.Message))
	return nil
}
