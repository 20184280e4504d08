package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/flatpress/content"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

var site = Site{Name: "Personal Blog", URL: "http://localhost:3000", Author: "Ada"}

func TestHomeListsPostsInGivenOrder(t *testing.T) {
	out := renderString(t, Home(HomePage{
		Site:  site,
		Title: "Personal Blog",
		Blogs: []content.Post{
			{Slug: "newer", Title: "Newer", Date: "2024-06-01", Content: "Second."},
			{Slug: "older", Title: "Older", Date: "2024-01-01", Content: "First."},
		},
	}))

	newer := strings.Index(out, `href="/blog/newer"`)
	older := strings.Index(out, `href="/blog/older"`)
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("expected newer before older, got:\n%s", out)
	}
	if !strings.Contains(out, `<time datetime="2024-06-01">June 1, 2024</time>`) {
		t.Errorf("expected formatted date, got:\n%s", out)
	}
}

func TestHomeEmpty(t *testing.T) {
	out := renderString(t, Home(HomePage{Site: site, Title: "Personal Blog"}))
	if !strings.Contains(out, "No posts yet.") {
		t.Errorf("expected empty state, got:\n%s", out)
	}
}

func TestArticleEscapesContent(t *testing.T) {
	out := renderString(t, Article(ArticlePage{
		Site:  site,
		Title: "<b>Title</b>",
		Blog: content.Post{
			Slug:    "x",
			Title:   "<b>Title</b>",
			Date:    "someday",
			Content: "line one\nline <two>\n\nsecond paragraph",
		},
	}))

	for _, want := range []string{
		"&lt;b&gt;Title&lt;/b&gt;",
		"<p>line one<br>line &lt;two&gt;</p>",
		"<p>second paragraph</p>",
		"<time>someday</time>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>Title</b>") {
		t.Errorf("title was not escaped")
	}
}

func TestAdminDeleteFormsCarryCSRF(t *testing.T) {
	out := renderString(t, Admin(AdminPage{
		Site:     site,
		Title:    "Admin",
		Username: "admin",
		Message:  "Post deleted.",
		CSRF:     "tok123",
		Blogs:    []content.Post{{Slug: "a-post", Title: "A post", Date: "2024-01-01"}},
	}))

	for _, want := range []string{
		`action="/admin/posts/a-post/delete"`,
		`name="_csrf" value="tok123"`,
		"Post deleted.",
		"<span>admin</span>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNewPostKeepsSubmittedValues(t *testing.T) {
	out := renderString(t, NewPost(NewPostPage{
		Site:  site,
		Title: "New post",
		Error: "Slug is required.",
		Post:  content.Post{Title: `Say "hi"`, Slug: "say-hi", Date: "2024-01-01", Content: "body"},
	}))

	for _, want := range []string{
		`value="Say &#34;hi&#34;"`,
		`value="say-hi"`,
		"Slug is required.",
		">body</textarea>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("a\r\nb\r\n\r\n\n\nc\n\n")
	if len(got) != 2 || got[0] != "a\nb" || got[1] != "c" {
		t.Fatalf("Paragraphs = %q", got)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary("short\n\nrest", 200); got != "short" {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary("abcdefghij", 4); got != "abcd…" {
		t.Errorf("Summary = %q", got)
	}
	if got := Summary("", 4); got != "" {
		t.Errorf("Summary = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-06-01":           "June 1, 2024",
		"2024-06-01T08:00:00Z": "June 1, 2024",
		"whenever":             "whenever",
	}
	for in, want := range tests {
		if got := FormatDate(in); got != want {
			t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDynamicAttributesAreEscaped(t *testing.T) {
	out := renderString(t, Home(HomePage{
		Site:  Site{Name: `Ada's "blog"`},
		Title: "Home",
		Blogs: []content.Post{{Slug: `a"b`, Title: `"><script>x</script>`, Date: "2024-01-01"}},
	}))

	for _, bad := range []string{`<script>`, `href="/blog/a"b"`, `title="Ada's "blog""`} {
		if strings.Contains(out, bad) {
			t.Errorf("unescaped %q in:\n%s", bad, out)
		}
	}
	if !strings.Contains(out, `href="/blog/a%22b"`) {
		t.Errorf("post link not path-escaped:\n%s", out)
	}
}

func TestURLAttributesRejectScriptSchemes(t *testing.T) {
	var buf bytes.Buffer
	h := &htmlWriter{w: &buf}
	h.url("href", "javascript:alert(1)")
	h.url("action", "/admin/posts/x/delete")

	out := buf.String()
	if strings.Contains(out, "javascript:") {
		t.Errorf("script URL written: %s", out)
	}
	if !strings.Contains(out, `action="/admin/posts/x/delete"`) {
		t.Errorf("relative URL rewritten: %s", out)
	}
}
