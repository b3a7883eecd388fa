package session

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	stateKey   = "state"
	contextKey = "greenbean.state"
)

// Manager loads and saves State through the echo session middleware
type Manager struct {
	name string
}

func NewManager(name string) *Manager {
	return &Manager{name: name}
}

// Load returns the state of the current request. A corrupt payload is replaced by an empty state.
func (m *Manager) Load(c echo.Context) (*State, error) {
	if st, ok := c.Get(contextKey).(*State); ok {
		return st, nil
	}
	sess, err := m.session(c)
	if err != nil {
		return nil, err
	}
	raw, _ := sess.Values[stateKey].(string)
	st, err := decodeState(raw)
	if err != nil {
		zap.L().Warn("discarding unreadable session state", zap.String("session", sess.ID), zap.Error(err))
		st = NewState()
	}
	c.Set(contextKey, st)
	return st, nil
}

// Save writes the state back when it changed
func (m *Manager) Save(c echo.Context, st *State) error {
	if !st.Dirty() {
		return nil
	}
	sess, err := m.session(c)
	if err != nil {
		return err
	}
	raw, err := encodeState(st)
	if err != nil {
		return err
	}
	sess.Values[stateKey] = raw
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}

// session returns the request session. Stores hand back a fresh session together with
// the decode error when the cookie is invalid; that session is used as is.
// Backend failures fail the request so the stored session and its cookie survive.
func (m *Manager) session(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(m.name, c)
	if err != nil && (sess == nil || errors.Is(err, ErrBackend)) {
		return nil, errors.Wrap(err, "get session")
	}
	if err != nil {
		zap.L().Debug("invalid session cookie, starting a new session", zap.Error(err))
	}
	return sess, nil
}
