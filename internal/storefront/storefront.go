// Package storefront holds the HTTP handlers of the shop.
package storefront

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/greenbean/storefront/internal/catalog"
	"github.com/greenbean/storefront/internal/checkout"
	"github.com/greenbean/storefront/internal/notify"
	"github.com/greenbean/storefront/internal/session"
	"github.com/greenbean/storefront/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options dependencies of the storefront
type Options struct {
	Catalog       catalog.Repository
	Checkout      *checkout.Service
	Notifier      notify.Notifier
	Sessions      *session.Manager
	ShopName      string
	NotifyTimeout time.Duration
}

type Storefront struct {
	catalog       catalog.Repository
	checkout      *checkout.Service
	notifier      notify.Notifier
	sessions      *session.Manager
	shopName      string
	notifyTimeout time.Duration
}

func New(opts Options) *Storefront {
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = 10 * time.Second
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Log{}
	}
	return &Storefront{
		catalog:       opts.Catalog,
		checkout:      opts.Checkout,
		notifier:      opts.Notifier,
		sessions:      opts.Sessions,
		shopName:      opts.ShopName,
		notifyTimeout: opts.NotifyTimeout,
	}
}

// NewRenderer parses the page templates, from dir when set, else the embedded copies
func NewRenderer(dir string) (*webserver.Renderer, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, errors.Wrap(err, "embedded templates")
		}
		fsys = sub
	}
	return webserver.NewRenderer(fsys, templateFuncs)
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "$" + d.StringFixed(2)
	},
	"categoryTitle": catalog.CategoryTitle,
	"imageURL": func(image string) string {
		return "/static/images/" + image
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006 15:04")
	},
	"stars": func(n int) []struct{} {
		if n < 0 {
			n = 0
		}
		return make([]struct{}, n)
	},
}

// RegisterRoutes mounts every storefront route on the server
func (s *Storefront) RegisterRoutes(ws *webserver.WebServer) {
	if sub, err := fs.Sub(staticFS, "static"); err == nil {
		ws.StaticFS("/static", sub)
	}
	s.registerShopRoutes(ws)
	s.registerCartRoutes(ws)
	s.registerCheckoutRoutes(ws)
	s.registerContactRoutes(ws)
}

func (s *Storefront) state(c echo.Context) (*session.State, error) {
	return s.sessions.Load(c)
}

// render answers with the page template, or with the view model as JSON when the client prefers it.
// Flashes are consumed and the session is saved before anything is written.
func (s *Storefront) render(c echo.Context, st *session.State, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	flashes := st.Flashes()
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	if webserver.WantsJSON(c) {
		if len(flashes) > 0 {
			data["flashes"] = flashes
		}
		return c.JSON(http.StatusOK, data)
	}
	data["shop_name"] = s.shopName
	data["flashes"] = flashes
	data["cart_count"] = st.Cart.Len()
	data["year"] = time.Now().Year()
	return c.Render(http.StatusOK, name, data)
}

func (s *Storefront) redirect(c echo.Context, st *session.State, code int, url string) error {
	if err := s.sessions.Save(c, st); err != nil {
		return err
	}
	return c.Redirect(code, url)
}

func ok(c echo.Context, message string, extra echo.Map) error {
	resp := echo.Map{"success": true, "message": message}
	for k, v := range extra {
		resp[k] = v
	}
	return c.JSON(http.StatusOK, resp)
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"success": false, "message": message})
}
