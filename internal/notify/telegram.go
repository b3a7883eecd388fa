package notify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/greenbean/storefront/internal/domain"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
)

// Telegram sends messages through the Bot API sendMessage method
type Telegram struct {
	apiURL  string
	token   string
	chatID  string
	timeout time.Duration
}

type telegramResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func NewTelegram(apiURL, token, chatID string, timeout time.Duration) *Telegram {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	return &Telegram{
		apiURL:  strings.TrimRight(apiURL, "/"),
		token:   token,
		chatID:  chatID,
		timeout: timeout,
	}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Send(ctx context.Context, msg domain.ContactMessage) error {
	if t.token == "" || t.chatID == "" {
		return &DeliveryError{Channel: t.Name(), Err: errors.New("bot token or chat id not configured")}
	}
	var (
		resp telegramResponse
		code int
	)
	err := gout.POST(t.apiURL + "/bot" + t.token + "/sendMessage").
		WithContext(ctx).
		SetTimeout(t.timeout).
		SetJSON(gout.H{
			"chat_id":    t.chatID,
			"text":       FormatHTML(msg),
			"parse_mode": "HTML",
		}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return &DeliveryError{Channel: t.Name(), Err: errors.Wrap(err, "post sendMessage")}
	}
	if code != http.StatusOK || !resp.Ok {
		return &DeliveryError{Channel: t.Name(), Err: errors.Errorf("status %d: %s", code, resp.Description)}
	}
	return nil
}
