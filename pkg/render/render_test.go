package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/panres/pkg/explorer"
	"github.com/yumyai/panres/pkg/model"
)

func TestRenderNodePageIndividual(t *testing.T) {
	view := &explorer.DetailView{
		ID:    "http://x.org/onto#pan_1",
		Label: "blaTEM-1",
		Kind:  explorer.KindIndividual,
		Types: []explorer.CrossLink{{ID: "http://x.org/onto#PanGene", Label: "Pan gene", Internal: true}},
		Properties: []explorer.PropertyRow{
			{
				Property: explorer.CrossLink{ID: "http://x.org/onto#card_link", Label: "card link", Href: "http://x.org/onto#card_link"},
				Values: []explorer.Value{
					{Ref: &explorer.CrossLink{ID: "https://card.example/36009", Label: "36009", Href: "https://card.example/36009"}},
					{Literal: "861 <bp>", Datatype: &explorer.CrossLink{ID: "xsd#integer", Label: "integer", Href: "xsd#integer"}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderNodePage(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "<h1>blaTEM-1</h1>")
	assert.Contains(t, html, `href="/node/http:%2F%2Fx.org%2Fonto%23PanGene"`)
	assert.Contains(t, html, `href="https://card.example/36009" target="_blank"`)
	assert.Contains(t, html, "861 &lt;bp&gt;")
	assert.Contains(t, html, "Types")
	assert.NotContains(t, html, "Subclasses")
}

func TestRenderNodePageFallback(t *testing.T) {
	view := &explorer.DetailView{
		ID: "http://x.org/onto#same_as", Label: "same as", Description: "identity",
		Kind: explorer.KindProperty, Fallback: true,
	}
	var buf bytes.Buffer
	require.NoError(t, RenderNodePage(&buf, view))
	assert.Contains(t, buf.String(), "identity")
	assert.NotContains(t, buf.String(), "<h2>")
}

func TestRenderIndexAndSearch(t *testing.T) {
	var buf bytes.Buffer
	roots := []model.ClassSummary{{ID: "http://x/A", Label: "Alpha", HasSubClasses: true}}
	require.NoError(t, RenderIndexPage(&buf, roots, IndexStats{Classes: 1}))
	assert.Contains(t, buf.String(), "Alpha")
	assert.Contains(t, buf.String(), `class="has-children"`)

	buf.Reset()
	items := []model.AutocompleteItem{{DisplayName: "blaTEM-1", Link: "/node/x", TypeIndicator: "Pan gene"}}
	require.NoError(t, RenderSearchPage(&buf, `bla"`, items))
	assert.True(t, strings.Contains(buf.String(), "bla&#34;"))
	assert.Contains(t, buf.String(), "Pan gene")
}
