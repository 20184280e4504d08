package views

import (
	"net/url"
	"strings"

	"github.com/eringen/flatpress/content"
)

// PathEscape wraps url.PathEscape for building links.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// PostLink returns the escaped public path of a post.
func PostLink(p content.Post) string {
	return "/blog/" + PathEscape(p.Slug)
}

// FormatDate renders a post date for humans. Dates that cannot be parsed
// are shown as written.
func FormatDate(s string) string {
	t, ok := content.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("January 2, 2006")
}

// MachineDate returns the value for a <time datetime> attribute, or "".
func MachineDate(s string) string {
	t, ok := content.ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// Paragraphs splits a post body on blank lines.
func Paragraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(body, "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			out = append(out, block)
		}
	}
	return out
}

// Summary returns the first paragraph of body cut to at most n runes.
func Summary(body string, n int) string {
	paras := Paragraphs(body)
	if len(paras) == 0 {
		return ""
	}
	r := []rune(paras[0])
	if len(r) <= n {
		return paras[0]
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
