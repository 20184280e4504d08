// Package gate guards admin operations behind a single shared login.
//
// A client is either anonymous or authenticated. Logging in with the shared
// credentials creates a record in a Table and stores its id in a signed
// cookie session; logging out destroys the record. Require redirects
// anonymous clients to the login page without running the wrapped handler.
package gate

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// DefaultSessionName is the cookie session the gate reads and writes.
	DefaultSessionName = "admin_session"
	// DefaultLoginPath is where Require sends anonymous clients.
	DefaultLoginPath = "/login"

	sessionIDKey = "sid"
	contextKey   = "gate.session"
)

// ErrInvalidCredentials is returned by Login for any mismatch. It does not
// say which field was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials is the one admin identity.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) match(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))
	return u&p == 1
}

// Gate decides whether a request may reach admin handlers.
type Gate struct {
	table       *Table
	creds       Credentials
	sessionName string
	loginPath   string
}

// Option configures a Gate.
type Option func(*Gate)

// WithSessionName overrides DefaultSessionName.
func WithSessionName(name string) Option {
	return func(g *Gate) {
		g.sessionName = name
	}
}

// WithLoginPath overrides DefaultLoginPath.
func WithLoginPath(path string) Option {
	return func(g *Gate) {
		g.loginPath = path
	}
}

// New creates a Gate. The session middleware from echo-contrib must run
// before any of its methods are called.
func New(table *Table, creds Credentials, opts ...Option) *Gate {
	g := &Gate{
		table:       table,
		creds:       creds,
		sessionName: DefaultSessionName,
		loginPath:   DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoginPath returns the path anonymous clients are redirected to.
func (g *Gate) LoginPath() string {
	return g.loginPath
}

// Login checks the credentials and, on success, moves the client to the
// authenticated state.
func (g *Gate) Login(c echo.Context, username, password string) error {
	if !g.creds.match(username, password) {
		return ErrInvalidCredentials
	}
	sess, err := session.Get(g.sessionName, c)
	if sess == nil {
		return err
	}
	if old, ok := sess.Values[sessionIDKey].(string); ok {
		_ = g.table.Destroy(old)
	}
	id, err := g.table.Create(username)
	if err != nil {
		return err
	}
	sess.Values[sessionIDKey] = id
	return sess.Save(c.Request(), c.Response())
}

// Logout destroys the client's session record and expires its cookie.
// Errors are returned for logging only; the client is anonymous afterwards
// either way.
func (g *Gate) Logout(c echo.Context) error {
	sess, err := session.Get(g.sessionName, c)
	if sess == nil {
		return err
	}
	var destroyErr error
	if id, ok := sess.Values[sessionIDKey].(string); ok {
		destroyErr = g.table.Destroy(id)
	}
	delete(sess.Values, sessionIDKey)
	c.Set(contextKey, nil)
	sess.Options.MaxAge = -1
	return errors.Join(destroyErr, sess.Save(c.Request(), c.Response()))
}

// Current returns the client's session if it is authenticated.
func (g *Gate) Current(c echo.Context) (Session, bool) {
	if s, ok := c.Get(contextKey).(Session); ok {
		return s, true
	}
	sess, _ := session.Get(g.sessionName, c)
	if sess == nil {
		return Session{}, false
	}
	id, _ := sess.Values[sessionIDKey].(string)
	s, ok := g.table.Lookup(id)
	if !ok || !s.Authenticated {
		return Session{}, false
	}
	return s, true
}

// Require is middleware that only lets authenticated clients through.
func (g *Gate) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, ok := g.Current(c)
		if !ok {
			return c.Redirect(http.StatusSeeOther, g.loginPath)
		}
		c.Set(contextKey, s)
		return next(c)
	}
}
