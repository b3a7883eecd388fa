package notify

import (
	"context"
	"strings"

	"github.com/greenbean/storefront/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Multi sends to every channel concurrently. Delivery succeeds when at least one channel accepts the message.
type Multi struct {
	notifiers []Notifier
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Name() string {
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

func (m *Multi) Send(ctx context.Context, msg domain.ContactMessage) error {
	if len(m.notifiers) == 0 {
		return Log{}.Send(ctx, msg)
	}
	errs := make([]error, len(m.notifiers))
	var g errgroup.Group
	for i, n := range m.notifiers {
		i, n := i, n
		g.Go(func() error {
			errs[i] = n.Send(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	delivered := 0
	for i, err := range errs {
		if err == nil {
			delivered++
			continue
		}
		zap.L().Warn("notification channel failed", zap.String("channel", m.notifiers[i].Name()), zap.Error(err))
	}
	if delivered > 0 {
		return nil
	}
	return &DeliveryError{Channel: m.Name(), Err: multierr.Combine(errs...)}
}
