package webserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/greenbean/storefront/config"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// WebServer the storefront http server
type WebServer struct {
	root *echo.Echo
	cfg  config.WebConfig
}

// NewWebServer builds the echo instance with logging, recovery and session middleware.
// renderer may be nil when only JSON endpoints are served.
func NewWebServer(cfg config.WebConfig, store sessions.Store, renderer echo.Renderer) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.JSONSerializer = JSONSerializer{}
	e.Renderer = renderer

	s := &WebServer{root: e, cfg: cfg}
	e.HTTPErrorHandler = s.handleError

	e.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == "/" },
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			zap.L().Info("http request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(session.Middleware(store))

	if cfg.StaticDir != "" {
		e.Static("/static", cfg.StaticDir)
	}
	return s
}

// Root exposes the echo instance, mainly for tests
func (s *WebServer) Root() *echo.Echo {
	return s.root
}

func (s *WebServer) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *WebServer) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

// Group creates a route group under prefix
func (s *WebServer) Group(prefix string, m ...echo.MiddlewareFunc) *echo.Group {
	return s.root.Group(prefix, m...)
}

// StaticFS serves embedded assets unless a static directory is configured
func (s *WebServer) StaticFS(prefix string, fsys fs.FS) {
	if s.cfg.StaticDir != "" {
		return
	}
	s.root.StaticFS(prefix, fsys)
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	zap.S().Infof("Prepare to start web server at %s", addr)
	err := s.root.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}
