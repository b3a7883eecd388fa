package session

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/greenbean/storefront/internal/domain"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_EncodeKeepsCartOrdersAndFlashes(t *testing.T) {
	st := NewState()
	st.Cart.Add(domain.CartLineItem{ProductID: 4, Name: "Fiddle Leaf Fig", Price: decimal.RequireFromString("45.99"), Quantity: 2})
	st.Orders.Append(domain.Order{OrderID: "GB1", Status: domain.OrderStatusConfirmed})
	st.AddFlash(FlashSuccess, "Order placed successfully!")

	raw, err := encodeState(st)
	require.NoError(t, err)
	assert.Contains(t, raw, `"price":45.99`)

	back, err := decodeState(raw)
	require.NoError(t, err)
	require.Equal(t, 1, back.Cart.Len())
	assert.True(t, decimal.RequireFromString("45.99").Equal(back.Cart.Items()[0].Price))
	_, ok := back.Orders.FindByID("GB1")
	assert.True(t, ok)
	assert.False(t, back.Dirty())

	flashes := back.Flashes()
	require.Len(t, flashes, 1)
	assert.Equal(t, FlashSuccess, flashes[0].Category)
	assert.Empty(t, back.Flashes())
	assert.True(t, back.Dirty())
}

func TestDecodeState_Corrupt(t *testing.T) {
	_, err := decodeState("{not json")
	assert.Error(t, err)

	st, err := decodeState("")
	require.NoError(t, err)
	assert.True(t, st.Cart.IsEmpty())
}

func TestManager_PersistsAcrossRequests(t *testing.T) {
	backend, err := OpenBolt(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	store := NewServerStore(backend, KeyPairs(testSecret)...)
	defer store.Close()

	m := NewManager("gb")
	e := echo.New()
	e.Use(session.Middleware(store))
	e.POST("/add", func(c echo.Context) error {
		st, err := m.Load(c)
		if err != nil {
			return err
		}
		st.Cart.Add(domain.CartLineItem{ProductID: 1, Name: "Monstera", Price: decimal.NewFromInt(10), Quantity: 1})
		if err := m.Save(c, st); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/count", func(c echo.Context) error {
		st, err := m.Load(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int{"count": st.Cart.Len()})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/count", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/count", nil))
	assert.JSONEq(t, `{"count":0}`, rec.Body.String())
}

func TestManager_ForgedCookieStartsFresh(t *testing.T) {
	store := sessions.NewCookieStore(KeyPairs(testSecret)...)
	m := NewManager("gb")
	e := echo.New()
	e.Use(session.Middleware(store))
	e.POST("/add", func(c echo.Context) error {
		st, err := m.Load(c)
		if err != nil {
			return err
		}
		st.Cart.Add(domain.CartLineItem{ProductID: 2, Name: "Snake Plant", Quantity: 2})
		if err := m.Save(c, st); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int{"count": st.Cart.Len()})
	})

	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	req.AddCookie(&http.Cookie{Name: "gb", Value: "forged-value"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestManager_BackendFailureKeepsSession(t *testing.T) {
	store, backend := newFlakyStore(t)
	m := NewManager("gb")
	e := echo.New()
	e.Use(session.Middleware(store))
	e.POST("/add", func(c echo.Context) error {
		st, err := m.Load(c)
		if err != nil {
			return err
		}
		st.Cart.Add(domain.CartLineItem{ProductID: 1, Name: "Monstera", Price: decimal.NewFromInt(10), Quantity: 1})
		if err := m.Save(c, st); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]int{"count": st.Cart.Len()})
	})
	add := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/add", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := add(nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]

	backend.failLoads = 1
	rec = add(cookie)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = add(cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())
}
