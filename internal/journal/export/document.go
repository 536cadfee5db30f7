package export

import (
	"html/template"
	"strings"
)

var documentTmpl = template.Must(template.New("document").Parse(`<html>
  <head>
    <style>
      @page { margin: 0; }
      body { margin: 0; padding: 0; background-color: white; }
      img {
        width: 100%;
        height: 100vh;
        display: block;
        object-fit: contain;
        page-break-after: always;
      }
      img:last-child { page-break-after: auto; }
    </style>
  </head>
  <body>
    {{- range .}}<img src="{{.}}" />{{end -}}
  </body>
</html>
`))

// BuildDocumentHTML returns the markup for a document with one full-page
// image per data URI, in order, and no page break after the last one.
func BuildDocumentHTML(pages []string) string {
	urls := make([]template.URL, len(pages))
	for i, p := range pages {
		urls[i] = template.URL(p)
	}

	var b strings.Builder
	// the template is static and only receives URLs
	_ = documentTmpl.Execute(&b, urls)
	return b.String()
}
