package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/greenbean/storefront/config"
	"github.com/greenbean/storefront/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMsg = domain.ContactMessage{
	Name:    "Ada <Admin>",
	Email:   "ada@example.com",
	Message: "Do you ship ferns?",
	Host:    "shop.local:5000",
}

func TestFormatHTML(t *testing.T) {
	out := FormatHTML(testMsg)
	assert.Contains(t, out, "<b>New Contact Form Submission</b>")
	assert.Contains(t, out, "Ada &lt;Admin&gt;")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Do you ship ferns?")
	assert.Contains(t, out, "shop.local:5000")

	assert.Contains(t, FormatHTML(domain.ContactMessage{}), "<b>Received at:</b> Unknown")
}

func TestTelegram_Send(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegram(srv.URL, "TOKEN", "42", 5*time.Second)
	require.NoError(t, tg.Send(context.Background(), testMsg))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Contains(t, got["text"], "Do you ship ferns?")
}

func TestTelegram_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := NewTelegram(srv.URL, "TOKEN", "42", 5*time.Second).Send(context.Background(), testMsg)
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "telegram", de.Channel)
	assert.Contains(t, err.Error(), "status 400")
}

func TestTelegram_NotConfigured(t *testing.T) {
	err := NewTelegram("", "", "", time.Second).Send(context.Background(), testMsg)
	var de *DeliveryError
	assert.True(t, errors.As(err, &de))
}

type fakeNotifier struct {
	name  string
	err   error
	calls int32
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Send(context.Context, domain.ContactMessage) error {
	atomic.AddInt32(&f.calls, 1)
	return f.err
}

func TestMulti_OneSuccessIsEnough(t *testing.T) {
	bad := &fakeNotifier{name: "bad", err: errors.New("down")}
	good := &fakeNotifier{name: "good"}

	require.NoError(t, NewMulti(bad, good).Send(context.Background(), testMsg))
	assert.EqualValues(t, 1, bad.calls)
	assert.EqualValues(t, 1, good.calls)
}

func TestMulti_AllFail(t *testing.T) {
	a := &fakeNotifier{name: "a", err: errors.New("timeout")}
	b := &fakeNotifier{name: "b", err: errors.New("refused")}

	err := NewMulti(a, b).Send(context.Background(), testMsg)
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "a+b", de.Channel)
	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "refused")
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultAppConfig().Notify
	assert.IsType(t, Log{}, FromConfig(cfg))

	cfg.Telegram.Enabled = true
	cfg.Telegram.BotToken = "t"
	cfg.Telegram.ChatID = "c"
	assert.IsType(t, &Telegram{}, FromConfig(cfg))

	cfg.Mail.Enabled = true
	assert.IsType(t, &Multi{}, FromConfig(cfg))
}
