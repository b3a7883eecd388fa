package session

import (
	"context"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Backend persists encoded session values by id
type Backend interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	io.Closer
}

// Purger is implemented by backends that do not expire records on their own
type Purger interface {
	PurgeExpired(now time.Time) (int, error)
}

// ServerStore keeps session values in a Backend; the cookie only carries the signed id.
type ServerStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	backend Backend
	encoder securecookie.GobEncoder
}

func NewServerStore(backend Backend, keyPairs ...[]byte) *ServerStore {
	return &ServerStore{
		Codecs:  securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode},
		backend: backend,
	}
}

func (s *ServerStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New returns the stored session for the request cookie, or a fresh one when
// the cookie is missing, tampered or points at an expired record.
// A failing backend is reported as ErrBackend; the session returned with it must not be saved.
func (s *ServerStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.Options
	sess.Options = &opts
	sess.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.Codecs...); err != nil {
		zap.L().Debug("ignoring invalid session cookie", zap.Error(err))
		return sess, nil
	}
	data, err := s.backend.Load(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return sess, nil
	}
	if err != nil {
		return sess, &backendError{err: err}
	}
	if err := s.encoder.Deserialize(data, &sess.Values); err != nil {
		zap.L().Warn("discarding undecodable session", zap.String("session", id), zap.Error(err))
		return sess, nil
	}
	sess.ID = id
	sess.IsNew = false
	return sess, nil
}

func (s *ServerStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge < 0 {
		if sess.ID != "" {
			if err := s.backend.Delete(r.Context(), sess.ID); err != nil {
				return err
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	data, err := s.encoder.Serialize(sess.Values)
	if err != nil {
		return errors.Wrap(err, "serialize session")
	}
	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	if err := s.backend.Save(r.Context(), sess.ID, data, ttl); err != nil {
		return err
	}
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.Codecs...)
	if err != nil {
		return errors.Wrap(err, "sign session id")
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

// MaxAge sets the lifetime of new sessions and of the signing codecs
func (s *ServerStore) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

// Purge removes expired records when the backend needs it
func (s *ServerStore) Purge() (int, error) {
	p, ok := s.backend.(Purger)
	if !ok {
		return 0, nil
	}
	return p.PurgeExpired(time.Now())
}

func (s *ServerStore) Close() error {
	return s.backend.Close()
}

// StoreConfig selects and configures a session store
type StoreConfig struct {
	Kind      string // cookie, bolt or redis
	Secret    string
	BoltPath  string
	RedisAddr string
	RedisDB   int
	MaxAge    int
	Secure    bool
}

// KeyPairs derives the signing and encryption keys from the app secret
func KeyPairs(secret string) [][]byte {
	block := sha256.Sum256([]byte(secret))
	return [][]byte{[]byte(secret), block[:]}
}

// NewStore builds the configured store. Server stores are returned as *ServerStore.
func NewStore(cfg StoreConfig) (sessions.Store, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is empty")
	}
	keys := KeyPairs(cfg.Secret)
	switch cfg.Kind {
	case "cookie":
		store := sessions.NewCookieStore(keys...)
		store.Options.HttpOnly = true
		store.Options.Secure = cfg.Secure
		store.Options.SameSite = http.SameSiteLaxMode
		if cfg.MaxAge > 0 {
			store.MaxAge(cfg.MaxAge)
		}
		return store, nil
	case "", "bolt":
		backend, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return configure(NewServerStore(backend, keys...), cfg), nil
	case "redis":
		backend, err := NewRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return configure(NewServerStore(backend, keys...), cfg), nil
	default:
		return nil, errors.Errorf("unknown session store %q", cfg.Kind)
	}
}

func configure(store *ServerStore, cfg StoreConfig) *ServerStore {
	store.Options.Secure = cfg.Secure
	if cfg.MaxAge > 0 {
		store.MaxAge(cfg.MaxAge)
	}
	return store
}
