package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so page bodies can be written
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"`. Every dynamic attribute goes through here.
func (h *htmlWriter) attr(name, value string) {
	h.raw(` `, name, `="`, templ.EscapeString(value), `"`)
}

// url writes a URL-valued attribute. templ.URL replaces anything that is
// not http, https, mailto, tel or a relative path with a harmless
// placeholder.
func (h *htmlWriter) url(name, u string) {
	h.attr(name, string(templ.URL(u)))
}

// multiline escapes s and turns single newlines into <br>.
func (h *htmlWriter) multiline(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			h.raw("<br>")
		}
		h.text(line)
	}
}

func (h *htmlWriter) alert(class, msg string) {
	if msg == "" {
		return
	}
	h.raw(`<p class="`, class, `" role="status">`)
	h.text(msg)
	h.raw(`</p>`)
}

func (h *htmlWriter) csrfField(token string) {
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", token)
	h.raw(`>`)
}

type chrome struct {
	site        Site
	title       string
	description string
	username    string
	csrf        string
	admin       bool
}

func layout(c chrome, body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(c.title)
		if c.title != c.site.Name {
			h.raw(" · ")
			h.text(c.site.Name)
		}
		h.raw(`</title>`)
		if c.description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", c.description)
			h.raw(`>`)
		}
		h.raw(`<link rel="stylesheet" href="/public/flatpress.css">`,
			`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
		h.attr("title", c.site.Name)
		h.raw(`></head><body><header><a href="/"><strong>`)
		h.text(c.site.Name)
		h.raw(`</strong></a><nav>`)
		if c.admin {
			if c.username != "" {
				h.raw(`<span>`)
				h.text(c.username)
				h.raw(`</span>`)
			}
			h.raw(`<a href="/admin">Posts</a><a href="/admin/new">New post</a>`,
				`<form method="post" action="/logout" style="display:inline">`)
			h.csrfField(c.csrf)
			h.raw(`<button type="submit">Log out</button></form>`)
		} else {
			h.raw(`<a href="/feed.xml">RSS</a><a href="/admin">Admin</a>`)
		}
		h.raw(`</nav></header><main>`)
		body(h)
		h.raw(`</main><footer>`)
		if c.site.Author != "" {
			h.raw("&copy; ")
			h.text(c.site.Author)
		}
		h.raw(`</footer></body></html>`)
		return h.err
	})
}

func dateTag(h *htmlWriter, date string) {
	h.raw(`<time`)
	if m := MachineDate(date); m != "" {
		h.attr("datetime", m)
	}
	h.raw(`>`)
	h.text(FormatDate(date))
	h.raw(`</time>`)
}

// Home lists every post, newest first.
func Home(p HomePage) templ.Component {
	return layout(chrome{site: p.Site, title: p.Title, description: p.Site.Description}, func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		if len(p.Blogs) == 0 {
			h.raw(`<p>No posts yet.</p>`)
			return
		}
		h.raw(`<ul class="post-list">`)
		for _, b := range p.Blogs {
			h.raw(`<li><a`)
			h.url("href", PostLink(b))
			h.raw(`>`)
			h.text(b.Title)
			h.raw(`</a>`)
			dateTag(h, b.Date)
			if s := Summary(b.Content, 200); s != "" {
				h.raw(`<p>`)
				h.text(s)
				h.raw(`</p>`)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	})
}

// Article renders one post.
func Article(p ArticlePage) templ.Component {
	return layout(chrome{site: p.Site, title: p.Title, description: Summary(p.Blog.Content, 160)}, func(h *htmlWriter) {
		h.raw(`<article><h1>`)
		h.text(p.Blog.Title)
		h.raw(`</h1>`)
		dateTag(h, p.Blog.Date)
		for _, para := range Paragraphs(p.Blog.Content) {
			h.raw(`<p>`)
			h.multiline(para)
			h.raw(`</p>`)
		}
		h.raw(`</article><p><a href="/">&larr; All posts</a></p>`)
	})
}

// Login is the admin login form.
func Login(p LoginPage) templ.Component {
	return layout(chrome{site: p.Site, title: p.Title}, func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		h.alert("error", p.Error)
		h.raw(`<form class="stack" method="post" action="/login">`)
		h.csrfField(p.CSRF)
		h.raw(`<label>Username<input name="username" autocomplete="username" required></label>`,
			`<label>Password<input type="password" name="password" autocomplete="current-password" required></label>`,
			`<button type="submit">Log in</button></form>`)
	})
}

// Admin lists posts with delete buttons.
func Admin(p AdminPage) templ.Component {
	c := chrome{site: p.Site, title: p.Title, username: p.Username, csrf: p.CSRF, admin: true}
	return layout(c, func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		h.alert("notice", p.Message)
		h.alert("error", p.Error)
		if len(p.Blogs) == 0 {
			h.raw(`<p>No posts yet. <a href="/admin/new">Write one.</a></p>`)
			return
		}
		h.raw(`<table class="admin"><thead><tr><th>Title</th><th>Date</th><th>Slug</th><th></th></tr></thead><tbody>`)
		for _, b := range p.Blogs {
			h.raw(`<tr><td><a`)
			h.url("href", PostLink(b))
			h.raw(`>`)
			h.text(b.Title)
			h.raw(`</a></td><td>`)
			h.text(b.Date)
			h.raw(`</td><td><code>`)
			h.text(b.Slug)
			h.raw(`</code></td><td><form method="post"`)
			h.url("action", "/admin/posts/"+PathEscape(b.Slug)+"/delete")
			h.raw(`>`)
			h.csrfField(p.CSRF)
			h.raw(`<button type="submit">Delete</button></form></td></tr>`)
		}
		h.raw(`</tbody></table>`)
	})
}

// NewPost is the create form.
func NewPost(p NewPostPage) templ.Component {
	c := chrome{site: p.Site, title: p.Title, username: p.Username, csrf: p.CSRF, admin: true}
	return layout(c, func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		h.alert("error", p.Error)
		h.raw(`<form class="stack" method="post" action="/admin/posts">`)
		h.csrfField(p.CSRF)
		field := func(label, name, value string) {
			h.raw(`<label>`, label, `<input`)
			h.attr("name", name)
			h.attr("value", value)
			h.raw(` required></label>`)
		}
		field("Title", "title", p.Post.Title)
		field("Slug", "slug", p.Post.Slug)
		field("Date", "date", p.Post.Date)
		h.raw(`<label>Content<textarea name="content" required>`)
		h.text(p.Post.Content)
		h.raw(`</textarea></label><button type="submit">Publish</button></form>`)
	})
}

// NotFound is the 404 page.
func NotFound(p ErrorPage) templ.Component {
	return errorPage(p)
}

// ServerError is the 500 page.
func ServerError(p ErrorPage) templ.Component {
	return errorPage(p)
}

func errorPage(p ErrorPage) templ.Component {
	return layout(chrome{site: p.Site, title: p.Title}, func(h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1><p>`)
		h.text(p.Message)
		h.raw(`</p><p><a href="/">Back to the home page</a></p>`)
	})
}
