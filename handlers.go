package flatpress

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpress/content"
	"github.com/eringen/flatpress/views"
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(views.HomePage{
		Site:  a.site(),
		Title: a.Config.Name,
		Blogs: a.listPosts(c),
	}))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Store.Find(c.Param("slug"))
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			c.Logger().Errorf("find post %q: %v", c.Param("slug"), err)
		}
		return a.renderNotFound(c)
	}
	return Render(c, a.Views.Article(views.ArticlePage{
		Site:  a.site(),
		Title: post.Title,
		Blog:  post,
	}))
}

func handleAPIData(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"title":   "Hello from API",
		"message": "This data is coming from an API endpoint!",
	})
}

func (a *App) handleAPIPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, a.listPosts(c))
}

func (a *App) handleSitemap(c echo.Context) error {
	return renderXML(c, "application/xml; charset=utf-8", a.buildSitemap(a.listPosts(c)))
}

func (a *App) handleFeed(c echo.Context) error {
	return renderXML(c, "application/rss+xml; charset=utf-8", a.buildFeed(a.listPosts(c)))
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: %s\n", BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) renderNotFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(views.ErrorPage{
		Site:    a.site(),
		Title:   "Not found",
		Message: "Blog not found",
	}))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(views.ErrorPage{
			Site:    a.site(),
			Title:   "Server error",
			Message: "Something went wrong.",
		}))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
