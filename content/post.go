package content

// Post is a single blog entry.
type Post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Slug    string `json:"slug"`
}

// Link returns the public path of the post.
func (p Post) Link() string {
	return "/blog/" + p.Slug
}
