package flatpress

import (
	"encoding/xml"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/valyala/bytebufferpool"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus renders cmp into a pooled buffer and only then writes the
// status line, so a component that fails halfway leaves the response
// untouched for the error handler.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := cmp.Render(c.Request().Context(), buf); err != nil {
		return err
	}
	return c.Blob(code, echo.MIMETextHTMLCharsetUTF8, buf.B)
}

// renderXML encodes v behind the standard XML declaration.
func renderXML(c echo.Context, contentType string, v any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(v); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, buf.B)
}
