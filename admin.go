package flatpress

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpress/content"
	"github.com/eringen/flatpress/gate"
	"github.com/eringen/flatpress/views"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if _, ok := a.Gate.Current(c); ok {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return a.renderLogin(c, http.StatusOK, "")
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if err := a.Gate.Login(c, username, password); err != nil {
		if errors.Is(err, gate.ErrInvalidCredentials) {
			a.loginLimiter.Record(ip)
			return a.renderLogin(c, http.StatusUnauthorized, "Invalid username or password.")
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := a.Gate.Logout(c); err != nil {
		c.Logger().Warnf("logout: %v", err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleAdmin(c echo.Context) error {
	return a.renderAdminDashboard(c, a.takeFlash(c))
}

func (a *App) handleAdminNew(c echo.Context) error {
	return a.renderNewPost(c, http.StatusOK, content.Post{Date: time.Now().Format("2006-01-02")}, "")
}

func (a *App) handleAdminCreate(c echo.Context) error {
	post := content.Post{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: strings.TrimSpace(c.FormValue("content")),
		Date:    strings.TrimSpace(c.FormValue("date")),
		Slug:    strings.TrimSpace(c.FormValue("slug")),
	}
	err := a.Store.Create(post)
	if err == nil {
		c.Logger().Infof("created post %q", post.Slug)
		return a.redirectWithFlash(c, "Post created.")
	}

	var ve *content.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "slug" && post.Slug == "" && post.Title != "" {
			post.Slug = SuggestSlug(post.Title)
		}
		return a.renderNewPost(c, http.StatusUnprocessableEntity, post, capitalize(ve.Field)+" "+ve.Reason+".")
	case errors.Is(err, content.ErrCollision):
		return a.renderNewPost(c, http.StatusConflict, post, "A post with that slug already exists.")
	default:
		c.Logger().Errorf("create post %q: %v", post.Slug, err)
		return a.renderNewPost(c, http.StatusInternalServerError, post, "The post could not be saved.")
	}
}

func (a *App) handleAdminDelete(c echo.Context) error {
	slug := c.Param("slug")
	deleted, err := a.Store.Delete(slug)
	if err != nil {
		c.Logger().Errorf("delete post %q: %v", slug, err)
	}
	switch {
	case deleted:
		c.Logger().Infof("deleted post %q", slug)
		return a.redirectWithFlash(c, "Post deleted.")
	case err != nil:
		return a.redirectWithFlash(c, "The post could not be deleted.")
	default:
		return a.redirectWithFlash(c, "No post with that slug.")
	}
}

// redirectWithFlash sends the client back to the dashboard after a write so
// a reload does not resubmit the form. msg is shown once on the next visit.
func (a *App) redirectWithFlash(c echo.Context, msg string) error {
	if sess, _ := session.Get(sessionName, c); sess != nil {
		sess.Values[flashKey] = msg
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			c.Logger().Warnf("save flash: %v", err)
		}
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// takeFlash pops the pending dashboard message, if any.
func (a *App) takeFlash(c echo.Context) string {
	sess, _ := session.Get(sessionName, c)
	if sess == nil {
		return ""
	}
	msg, ok := sess.Values[flashKey].(string)
	if !ok {
		return ""
	}
	delete(sess.Values, flashKey)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("clear flash: %v", err)
	}
	return msg
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	page := views.AdminPage{
		Site:    a.site(),
		Title:   "Admin",
		Message: msg,
		CSRF:    CsrfToken(c),
	}
	if s, ok := a.Gate.Current(c); ok {
		page.Username = s.Username
	}
	posts, err := a.Store.List()
	if err != nil {
		c.Logger().Errorf("list posts: %v", err)
		page.Error = "The content directory could not be read."
		posts = []content.Post{}
	}
	page.Blogs = posts
	return Render(c, a.Views.Admin(page))
}

func (a *App) renderNewPost(c echo.Context, code int, post content.Post, errMsg string) error {
	page := views.NewPostPage{
		Site:  a.site(),
		Title: "New post",
		Post:  post,
		Error: errMsg,
		CSRF:  CsrfToken(c),
	}
	if s, ok := a.Gate.Current(c); ok {
		page.Username = s.Username
	}
	return RenderStatus(c, code, a.Views.NewPost(page))
}

func (a *App) renderLogin(c echo.Context, code int, errMsg string) error {
	return RenderStatus(c, code, a.Views.Login(views.LoginPage{
		Site:  a.site(),
		Title: "Log in",
		Error: errMsg,
		CSRF:  CsrfToken(c),
	}))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
