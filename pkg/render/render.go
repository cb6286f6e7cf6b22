// HTML pages for the ontology browser

package render

import (
	"html/template"

	"github.com/yumyai/panres/pkg/explorer"
	"github.com/yumyai/panres/pkg/model"
)

const layoutTmpl = `
	{{define "header"}}
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<link href="/static/style.css" rel="stylesheet">
		<title>{{ . }} - PanRes</title>
	</head>
	<body>
		<nav>
			<a href="/">PanRes</a>
			<form action="/search" method="get">
				<input type="search" name="q" placeholder="Search genes, classes, databases">
				<button type="submit">Search</button>
			</form>
		</nav>
		<main>
	{{end}}

	{{define "footer"}}
		</main>
	</body>
	</html>
	{{end}}

	{{define "crosslink"}}
		{{- if .Internal -}}
			<a class="xlink" href="{{ nodeLink .ID }}">{{ .Label }}</a>
		{{- else -}}
			<a class="xlink external" href="{{ .Href }}" target="_blank" rel="noopener">{{ .Label }}</a>
		{{- end -}}
	{{end}}
`

var funcMap = template.FuncMap{
	"nodeLink": model.NodeLink,
	"kindName": func(k explorer.Kind) string {
		if k == explorer.KindUnknown {
			return "node"
		}
		return string(k)
	},
}

// newPage parses the shared layout plus the page body.
func newPage(name, body string) *template.Template {
	t := template.New(name).Funcs(funcMap)
	t = template.Must(t.Parse(body))
	t = template.Must(t.Parse(layoutTmpl))
	return t
}
