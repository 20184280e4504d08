package flatpress

import (
	"net/url"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpress/content"
)

// SuggestSlug derives a URL-safe slug from a title.
func SuggestSlug(title string) string {
	return slug.Make(title)
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// listPosts returns every post, or an empty list when the content directory
// cannot be read. Public pages stay up even when the store is broken.
func (a *App) listPosts(c echo.Context) []content.Post {
	posts, err := a.Store.List()
	if err != nil {
		c.Logger().Errorf("list posts: %v", err)
		return []content.Post{}
	}
	return posts
}

// excerpt returns the first line of body, cut to at most n runes.
func excerpt(body string, n int) string {
	body = strings.TrimSpace(body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = strings.TrimSpace(body[:i])
	}
	r := []rune(body)
	if len(r) <= n {
		return body
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
