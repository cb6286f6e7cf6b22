package render

import (
	"html/template"
	"io"

	"github.com/yumyai/panres/pkg/model"
)

var indexPageTemplate *template.Template

func init() {
	mainTmpl := `
	{{template "header" "Ontology"}}
		<h1>PanRes ontology</h1>
		<p>{{ .Stats.Classes }} classes, {{ .Stats.Individuals }} individuals, {{ .Stats.Properties }} properties.</p>
		<ul class="roots">
		{{ range .Roots }}
			<li>
				<a href="{{ nodeLink .ID }}">{{ .Label }}</a>
				{{ if or .HasSubClasses .HasInstances }}<span class="has-children">+</span>{{ end }}
			</li>
		{{ else }}
			<li>No classes imported yet.</li>
		{{ end }}
		</ul>
	{{template "footer"}}`

	indexPageTemplate = newPage("index_page", mainTmpl)
}

type IndexStats struct {
	Classes     int
	Individuals int
	Properties  int
}

// RenderIndexPage lists the root classes.
func RenderIndexPage(w io.Writer, roots []model.ClassSummary, stats IndexStats) error {
	data := struct {
		Roots []model.ClassSummary
		Stats IndexStats
	}{
		Roots: roots,
		Stats: stats,
	}
	return indexPageTemplate.Execute(w, data)
}
