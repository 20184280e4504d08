package gate

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	e       *echo.Echo
	gate    *Gate
	table   *Table
	clock   *fakeClock
	reached int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	table, clock := newClockedTable(time.Hour)
	h := &harness{
		e:     echo.New(),
		table: table,
		clock: clock,
		gate:  New(table, Credentials{Username: "admin", Password: "s3cret"}),
	}
	h.e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-session-secret"))))
	h.e.POST("/login", func(c echo.Context) error {
		if err := h.gate.Login(c, c.FormValue("username"), c.FormValue("password")); err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/admin")
	})
	h.e.POST("/logout", func(c echo.Context) error {
		_ = h.gate.Logout(c)
		return c.Redirect(http.StatusSeeOther, "/")
	})
	h.e.GET("/admin", func(c echo.Context) error {
		h.reached++
		s, _ := h.gate.Current(c)
		return c.String(http.StatusOK, "hello "+s.Username)
	}, h.gate.Require)
	return h
}

func (h *harness) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(t *testing.T, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {user}, "password": {pass}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return h.do(req, nil)
}

func TestRequireRedirectsAnonymous(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin", nil), nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, h.reached)
}

func TestLoginThenAccess(t *testing.T) {
	h := newHarness(t)

	rec := h.login(t, "admin", "s3cret")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, 1, h.table.Len())

	rec = h.do(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello admin", rec.Body.String())
	assert.Equal(t, 1, h.reached)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	h := newHarness(t)

	for _, creds := range [][2]string{{"admin", "wrong"}, {"root", "s3cret"}, {"", ""}} {
		rec := h.login(t, creds[0], creds[1])
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, ErrInvalidCredentials.Error(), rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	}
	assert.Zero(t, h.table.Len())
}

func TestLogoutReturnsToAnonymous(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t, "admin", "s3cret").Result().Cookies()

	rec := h.do(httptest.NewRequest(http.MethodPost, "/logout", nil), cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, h.table.Len())

	// The old cookie no longer maps to a record even if the client keeps it.
	rec = h.do(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, h.reached)
}

func TestLogoutWithoutSession(t *testing.T) {
	h := newHarness(t)

	rec := h.do(httptest.NewRequest(http.MethodPost, "/logout", nil), nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionExpiryForcesAnonymous(t *testing.T) {
	h := newHarness(t)
	cookies := h.login(t, "admin", "s3cret").Result().Cookies()

	h.clock.advance(2 * time.Hour)

	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Zero(t, h.reached)
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	h := newHarness(t)
	forged := &http.Cookie{Name: DefaultSessionName, Value: "not-a-signed-value"}

	rec := h.do(httptest.NewRequest(http.MethodGet, "/admin", nil), []*http.Cookie{forged})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, h.reached)
}

func TestWithLoginPath(t *testing.T) {
	g := New(NewTable(time.Minute), Credentials{}, WithLoginPath("/admin/login"), WithSessionName("s"))
	assert.Equal(t, "/admin/login", g.LoginPath())
	assert.Equal(t, "s", g.sessionName)
}
