package render

import (
	"html/template"
	"io"

	"github.com/yumyai/panres/pkg/model"
)

var searchPageTemplate *template.Template

func init() {
	mainTmpl := `
	{{template "header" "Search"}}
		<h1>Search results for &ldquo;{{ .Query }}&rdquo;</h1>
		{{ if .Items }}
		<ul class="results">
		{{ range .Items }}
			<li><a href="{{ .Link }}">{{ .DisplayName }}</a> <span class="type">{{ .TypeIndicator }}</span></li>
		{{ end }}
		</ul>
		{{ else }}
		<p>Nothing matched.</p>
		{{ end }}
	{{template "footer"}}`

	searchPageTemplate = newPage("search_page", mainTmpl)
}

func RenderSearchPage(w io.Writer, query string, items []model.AutocompleteItem) error {
	data := struct {
		Query string
		Items []model.AutocompleteItem
	}{
		Query: query,
		Items: items,
	}
	return searchPageTemplate.Execute(w, data)
}
