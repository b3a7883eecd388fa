package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Web.Port)
	assert.Equal(t, "GB", cfg.Shop.OrderPrefix)
	assert.Equal(t, 50.0, cfg.Shop.FreeShippingThreshold)
	assert.Equal(t, 9.99, cfg.Shop.FlatShipping)
	assert.Equal(t, 0.08, cfg.Shop.TaxRate)
	assert.False(t, cfg.Notify.Telegram.Enabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "storefront.yml")
	data := []byte(`
system:
  workdir: ` + dir + `
web:
  port: 8080
  session_store: redis
shop:
  order_id_format: legacy
  tax_rate: 0.1
`)
	require.NoError(t, os.WriteFile(cfile, data, 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("GREENBEAN_ADMIN_PWD", "s3cret")

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "redis", cfg.Web.SessionStore)
	assert.Equal(t, "legacy", cfg.Shop.OrderIDFormat)
	assert.Equal(t, 0.1, cfg.Shop.TaxRate)
	// untouched keys keep their defaults
	assert.Equal(t, "GB", cfg.Shop.OrderPrefix)
	assert.True(t, cfg.Notify.Telegram.Enabled)
	assert.Equal(t, "admin", cfg.Web.AdminUser)
	assert.Equal(t, "s3cret", cfg.Web.AdminPasswd)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.GetDataDir())

	require.NoError(t, cfg.InitDirs())
	assert.DirExists(t, cfg.GetLogDir())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_BadPortEnvIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Web.Port)
}
