package views

import "github.com/eringen/flatpress/content"

// Site carries site-wide settings every page needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// HomePage lists every post.
type HomePage struct {
	Site  Site
	Title string
	Blogs []content.Post
}

// ArticlePage shows one post.
type ArticlePage struct {
	Site  Site
	Title string
	Blog  content.Post
}

// LoginPage is the admin login form.
type LoginPage struct {
	Site  Site
	Title string
	Error string
	CSRF  string
}

// AdminPage lists posts with delete controls.
type AdminPage struct {
	Site     Site
	Title    string
	Username string
	Blogs    []content.Post
	Message  string
	Error    string
	CSRF     string
}

// NewPostPage is the create form. Post holds the submitted values when the
// form is shown again after an error.
type NewPostPage struct {
	Site     Site
	Title    string
	Username string
	Post     content.Post
	Error    string
	CSRF     string
}

// ErrorPage renders 404 and 500 responses.
type ErrorPage struct {
	Site    Site
	Title   string
	Message string
}
