package app

import (
	"github.com/gorilla/sessions"
	"github.com/greenbean/storefront/config"
	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/notify"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// CatalogProvider provides the product catalog
type CatalogProvider interface {
	Catalog() catalog.Repository
}

// SessionProvider provides the session store shared by the web server and the jobs
type SessionProvider interface {
	SessionStore() sessions.Store
}

// NotifierProvider provides the contact form delivery channel
type NotifierProvider interface {
	Notifier() notify.Notifier
}

// AppContext combines all provider interfaces for full application context
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	CatalogProvider
	SessionProvider
	NotifierProvider

	Web() *webserver.WebServer
	Release()
}
