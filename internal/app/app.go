package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/sessions"
	"github.com/greenbean/storefront/config"
	"github.com/greenbean/storefront/internal/adminapi"
	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/checkout"
	"github.com/greenbean/storefront/internal/notify"
	"github.com/greenbean/storefront/internal/pricing"
	"github.com/greenbean/storefront/internal/session"
	"github.com/greenbean/storefront/internal/storefront"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/greenbean/storefront/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	catalog   catalog.Repository
	store     sessions.Store
	checkout  *checkout.Service
	notifier  notify.Notifier
	web       *webserver.WebServer
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ SessionProvider   = (*Application)(nil)
	_ NotifierProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

// DB is nil unless the catalog is served from a database
func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Catalog() catalog.Repository {
	return a.catalog
}

func (a *Application) SessionStore() sessions.Store {
	return a.store
}

func (a *Application) Notifier() notify.Notifier {
	return a.notifier
}

// Web returns the http server with every storefront route mounted
func (a *Application) Web() *webserver.WebServer {
	return a.web
}

// Init sets up logging and metrics, then builds the storefront from the configuration.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	zap.ReplaceGlobals(newLogger(cfg.Logger, cfg.System.Debug))

	// Initialize metrics with workdir convention
	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	if cfg.Catalog.Source == "database" {
		if cfg.Database.Type == "" {
			cfg.Database.Type = "sqlite"
		}
		a.gormDB, err = getDatabase(cfg.Database, cfg.System.Workdir)
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	a.catalog, err = catalog.New(ctx, cfg.Catalog.Source, cfg.Catalog.File, a.gormDB)
	if err != nil {
		return errors.Wrap(err, "open catalog")
	}

	a.store, err = session.NewStore(session.StoreConfig{
		Kind:      cfg.Web.SessionStore,
		Secret:    cfg.Web.Secret,
		BoltPath:  filepath.Join(cfg.GetDataDir(), "sessions.db"),
		RedisAddr: cfg.Web.RedisAddr,
		RedisDB:   cfg.Web.RedisDB,
		MaxAge:    cfg.Web.SessionTTL,
		Secure:    cfg.Web.SecureCookie,
	})
	if err != nil {
		return errors.Wrap(err, "open session store")
	}

	ids, err := checkout.NewIDGenerator(cfg.Shop.OrderIDFormat, cfg.Shop.OrderPrefix, cfg.Shop.NodeID)
	if err != nil {
		return err
	}
	rules := pricing.NewRules(cfg.Shop.FreeShippingThreshold, cfg.Shop.FlatShipping, cfg.Shop.TaxRate)
	a.checkout = checkout.NewService(rules, ids, checkout.WithDefaultCountry(cfg.Shop.DefaultCountry))
	a.notifier = notify.FromConfig(cfg.Notify)
	zap.L().Info("contact notifier ready", zap.String("channel", a.notifier.Name()))

	renderer, err := storefront.NewRenderer(cfg.Web.TemplateDir)
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}
	a.web = webserver.NewWebServer(cfg.Web, a.store, renderer)
	storefront.New(storefront.Options{
		Catalog:       a.catalog,
		Checkout:      a.checkout,
		Notifier:      a.notifier,
		Sessions:      session.NewManager(cfg.Web.SessionName),
		ShopName:      cfg.Shop.Name,
		NotifyTimeout: time.Duration(cfg.Notify.Timeout) * time.Second,
	}).RegisterRoutes(a.web)
	adminapi.Register(a.web, adminapi.Options{
		Catalog:  a.catalog,
		Channel:  a.notifier.Name(),
		Username: cfg.Web.AdminUser,
		Password: cfg.Web.AdminPasswd,
	})

	a.initJob()
	return nil
}

func newLogger(cfg config.LogConfig, debug bool) *zap.Logger {
	var zapConfig zap.Config
	if cfg.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		logger, err := zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
		return logger
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller())
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	var err error
	if closer, ok := a.store.(interface{ Close() error }); ok {
		err = multierr.Append(err, closer.Close())
	}
	if a.gormDB != nil {
		if sqlDB, dbErr := a.gormDB.DB(); dbErr == nil {
			err = multierr.Append(err, sqlDB.Close())
		}
	}
	err = multierr.Append(err, metrics.Close())
	if err != nil {
		zap.L().Warn("release resources", zap.Error(err))
	}
	_ = zap.L().Sync()
}
