package render

import (
	"html/template"
	"io"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/explorer"
	"go.uber.org/zap"
)

var nodePageTemplate *template.Template

func init() {
	mainTmpl := `
	{{template "header" .Label}}
		<article class="detail {{ kindName .Kind }}">
			<h1>{{ .Label }}</h1>
			<p class="node-id"><code>{{ .ID }}</code></p>
			{{ with .Description }}<p class="description">{{ . }}</p>{{ end }}

			{{ if not .Fallback }}
				{{ if eq (kindName .Kind) "class" }}
					{{template "link_list" (linkSection "Parent classes" .Parents)}}
					{{template "link_list" (linkSection "Subclasses" .SubClasses)}}
					{{template "link_list" (linkSection "Instances" .Instances)}}
				{{ else }}
					{{template "link_list" (linkSection "Types" .Types)}}
					{{template "property_table" .Properties}}
				{{ end }}
			{{ end }}
		</article>
	{{template "footer"}}`

	linkListTmpl := `
	{{define "link_list"}}
		{{ if .Links }}
		<section>
			<h2>{{ .Title }}</h2>
			<ul>
			{{ range .Links }}<li>{{template "crosslink" .}}</li>{{ end }}
			</ul>
		</section>
		{{ end }}
	{{end}}`

	propertyTableTmpl := `
	{{define "property_table"}}
		{{ if . }}
		<section>
			<h2>Properties</h2>
			<table class="properties">
			{{ range . }}
				<tr>
					<th>{{template "crosslink" .Property}}</th>
					<td>
					{{ range .Values }}
						<div class="value">
						{{ if .IsLiteral }}
							{{ .Literal }}{{ with .Datatype }} <small>({{template "crosslink" .}})</small>{{ end }}
						{{ else }}
							{{template "crosslink" .Ref}}
						{{ end }}
						</div>
					{{ end }}
					</td>
				</tr>
			{{ end }}
			</table>
		</section>
		{{ end }}
	{{end}}`

	nodePageTemplate = template.New("node_page").Funcs(funcMap).Funcs(template.FuncMap{
		"linkSection": func(title string, links []explorer.CrossLink) map[string]any {
			return map[string]any{"Title": title, "Links": links}
		},
	})
	nodePageTemplate = template.Must(nodePageTemplate.Parse(mainTmpl))
	nodePageTemplate = template.Must(nodePageTemplate.Parse(linkListTmpl))
	nodePageTemplate = template.Must(nodePageTemplate.Parse(propertyTableTmpl))
	nodePageTemplate = template.Must(nodePageTemplate.Parse(layoutTmpl))
}

// RenderNodePage renders one node's detail view.
func RenderNodePage(w io.Writer, view *explorer.DetailView) error {
	logger.Debug("Rendering node page", zap.String("id", view.ID))
	return nodePageTemplate.Execute(w, view)
}
