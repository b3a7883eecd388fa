package notify

import (
	"time"

	"github.com/greenbean/storefront/config"
)

// FromConfig builds the enabled channels. With none enabled messages only go to the log.
func FromConfig(cfg config.NotifyConfig) Notifier {
	timeout := time.Duration(cfg.Timeout) * time.Second
	var channels []Notifier
	if cfg.Telegram.Enabled {
		channels = append(channels, NewTelegram(cfg.Telegram.ApiURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, timeout))
	}
	if cfg.Mail.Enabled {
		channels = append(channels, NewMail(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From, cfg.Mail.To))
	}
	switch len(channels) {
	case 0:
		return Log{}
	case 1:
		return channels[0]
	default:
		return NewMulti(channels...)
	}
}
