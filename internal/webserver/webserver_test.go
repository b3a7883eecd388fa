package webserver

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/greenbean/storefront/config"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,shopemail"`
}

func TestValidator_ShopEmail(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(contactForm{Name: "Ada", Email: "ada@example.com"}))

	err := v.Validate(contactForm{Name: "Ada", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, []string{"shopemail"}, FailedTags(err))

	err = v.Validate(contactForm{Email: ""})
	assert.Equal(t, []string{"required", "required"}, FailedTags(err))
}

func TestValidEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "first.last+tag@mail.example.org"} {
		assert.True(t, ValidEmail(s), s)
	}
	for _, s := range []string{"not-an-email", "a@b", "a@b.c", "@example.com", "a b@example.com"} {
		assert.False(t, ValidEmail(s), s)
	}
}

func TestWantsJSON(t *testing.T) {
	e := echo.New()
	cases := []struct {
		accept string
		want   bool
	}{
		{"application/json", true},
		{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"application/json, text/html", true},
		{"text/html, application/json", false},
		{"text/html;q=0.5, application/json", true},
		{"", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAccept, tc.accept)
		assert.Equal(t, tc.want, WantsJSON(e.NewContext(req, httptest.NewRecorder())), tc.accept)
	}
}

func TestIsJSONRequest_ContentType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderContentType, "application/json; charset=utf-8")
	assert.True(t, IsJSONRequest(e.NewContext(req, httptest.NewRecorder())))
}

func newTestServer(t *testing.T) *WebServer {
	t.Helper()
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`<html>{{template "content" .}}</html>`)},
		"error.html":  {Data: []byte(`{{define "content"}}<h1>{{.code}}</h1><p>{{.message}}</p>{{end}}`)},
		"hello.html":  {Data: []byte(`{{define "content"}}hello {{upper .Name}}{{end}}`)},
	}
	r, err := NewRenderer(fsys, template.FuncMap{"upper": func(s string) string { return s + "!" }})
	require.NoError(t, err)
	return NewWebServer(config.DefaultAppConfig().Web, sessions.NewCookieStore([]byte("k")), r)
}

func TestRenderer(t *testing.T) {
	s := newTestServer(t)
	s.GET("/hello", func(c echo.Context) error {
		return c.Render(http.StatusOK, "hello", map[string]string{"Name": "fern"})
	})

	rec := httptest.NewRecorder()
	s.Root().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>hello fern!</html>", rec.Body.String())
}

func TestErrorHandler(t *testing.T) {
	s := newTestServer(t)
	s.GET("/boom", func(c echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	s.Root().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404</h1>")

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	s.Root().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"`+MsgUnexpected+`"}`, rec.Body.String())
}
