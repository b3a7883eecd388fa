package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/greenbean/storefront/config"
	"github.com/greenbean/storefront/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.Filename = filepath.Join(cfg.GetLogDir(), "storefront.log")
	require.NoError(t, cfg.InitDirs())
	return cfg
}

func TestApplication_Init(t *testing.T) {
	cfg := testConfig(t)
	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	defer a.Release()

	assert.Nil(t, a.DB())
	assert.NotNil(t, a.Scheduler())
	assert.Equal(t, "log", a.Notifier().Name())
	_, ok := a.SessionStore().(*session.ServerStore)
	assert.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/shop/category/indoor", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	a.Web().Root().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Monstera Deliciosa")

	a.SchedPurgeSessions()
	a.SchedProcessMonitorTask()
}

func TestApplication_InitDatabaseCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Source = "database"
	cfg.Web.SessionStore = "cookie"
	cfg.Logger.FileEnable = true

	a := NewApplication(cfg)
	require.NoError(t, a.Init(cfg))
	defer a.Release()

	require.NotNil(t, a.DB())
	products, err := a.Catalog().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 18)
	assert.FileExists(t, filepath.Join(cfg.GetDataDir(), "catalog.db"))
}

func TestApplication_InitRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Shop.OrderIDFormat = "uuid"
	assert.Error(t, NewApplication(cfg).Init(cfg))

	cfg = testConfig(t)
	cfg.Web.SessionStore = "memcached"
	assert.Error(t, NewApplication(cfg).Init(cfg))
}

func TestGetDatabase_UnsupportedType(t *testing.T) {
	_, err := getDatabase(config.DBConfig{Type: "oracle"}, t.TempDir())
	assert.Error(t, err)
}

func TestApplication_ReleaseClosesDatabase(t *testing.T) {
	cfg := testConfig(t)
	db, err := getDatabase(config.DBConfig{Type: "sqlite", Name: "override.db"}, cfg.System.Workdir)
	require.NoError(t, err)

	a := NewApplication(cfg)
	a.OverrideDB(db)
	assert.Same(t, db, a.DB())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	a.Release()
	assert.Error(t, sqlDB.Ping())
}
