/*
Package content is a flat-file store for blog posts.

Every file in the content directory that ends in ".json" holds either a
single post object or an array of posts:

	[
	  {
	    "title": "Hello",
	    "content": "First post.",
	    "date": "2024-06-01",
	    "slug": "hello"
	  }
	]

The directory is re-read on every call. There is no index and no cache, so
files edited by hand show up on the next request.

Create always writes a new file named after the slug. Delete rewrites or
removes whichever files hold a matching record. Files are replaced by
writing to a temporary file and renaming it, so a concurrent reader never
sees a half-written document.
*/
package content
