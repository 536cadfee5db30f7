package render

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
)

const (
	// A4Ratio is height over width of an A4 sheet.
	A4Ratio      = 1.414
	ringCount    = 16
	DefaultWidth = 420
	pageSelector = "#page"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("page.html.tmpl").
	Funcs(template.FuncMap{
		// images are validated data URIs by the time they reach the template
		"imageURL": func(s string) template.URL {
			if !strings.HasPrefix(s, "data:image/") {
				return ""
			}
			return template.URL(s)
		},
	}).
	ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	Entry  *models.Entry
	Width  int
	Height int
	Rings  []struct{}
}

// PageHeight returns the A4-proportioned height for width.
func PageHeight(width int) int {
	return int(math.Round(float64(width) * A4Ratio))
}

// PageHTML renders the scrapbook page for e. A nil entry gives a blank
// document.
func PageHTML(e *models.Entry, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	var b strings.Builder
	err := pageTmpl.Execute(&b, pageData{
		Entry:  e,
		Width:  width,
		Height: PageHeight(width),
		Rings:  make([]struct{}, ringCount),
	})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return b.String(), nil
}
