// Package adminapi serves the operator endpoints: catalog listing and export plus shop metrics.
package adminapi

import (
	"crypto/subtle"

	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const Prefix = "/admin"

type Options struct {
	Catalog  catalog.Repository
	Channel  string // notifier name the contact counters are labelled with
	Username string
	Password string
}

type api struct {
	catalog catalog.Repository
	channel string
}

// Register mounts the operator routes behind basic auth. Nothing is mounted without a password.
func Register(ws *webserver.WebServer, opts Options) bool {
	if opts.Password == "" {
		zap.L().Info("operator api disabled, no admin password configured")
		return false
	}
	g := ws.Group(Prefix, middleware.BasicAuth(func(user, pass string, _ echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(opts.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(opts.Password)) == 1
		return userOK && passOK, nil
	}))
	a := &api{catalog: opts.Catalog, channel: opts.Channel}
	a.registerProductRoutes(g)
	a.registerMetricsRoutes(g)
	return true
}
