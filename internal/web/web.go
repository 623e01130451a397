// Package web holds the embedded HTML templates and the views engine.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewEngine returns a views engine over the embedded templates. Templates are
// addressed by bare name ("home"), matching the render(name, context) contract.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// embed guarantees the directory exists; this cannot happen.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
