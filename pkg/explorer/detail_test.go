package explorer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/panres/pkg/model"
)

func TestShowIndividual(t *testing.T) {
	src := newFakeSource()
	src.details["I1"] = rawDetails("individual",
		`{"id":"I1","label":"Gene1","types":["C1"],"properties":{"p1":[{"type":"literal","value":"42"}]}}`)
	reg := NewRegistry()
	reg.Merge(map[string]NodeInfo{"C1": {Label: "Beta", Kind: KindClass}})
	panel := NewPanel(src, reg)

	view, err := panel.Show(context.Background(), "I1")
	require.NoError(t, err)
	assert.Equal(t, "Gene1", view.Label)
	assert.Equal(t, "I1", view.ID)
	assert.False(t, view.Fallback)

	require.Len(t, view.Types, 1)
	assert.Equal(t, "C1", view.Types[0].ID)
	assert.True(t, view.Types[0].Internal)

	require.Len(t, view.Properties, 1)
	row := view.Properties[0]
	assert.Equal(t, "p1", row.Property.Label)
	require.Len(t, row.Values, 1)
	assert.True(t, row.Values[0].IsLiteral())
	assert.Equal(t, "42", row.Values[0].Literal)
	assert.Nil(t, row.Values[0].Datatype)

	snap := panel.Current()
	assert.Equal(t, PanelReady, snap.State)
	assert.Same(t, view, snap.View)
}

func TestShowIndividualPropertyOrderAndValues(t *testing.T) {
	xsdInt := "http://www.w3.org/2001/XMLSchema#integer"
	src := newFakeSource()
	src.details["g"] = mustDetails(model.KindIndividual, &model.IndividualDetails{
		ID: "g", Label: "gene",
		Types: []string{},
		Properties: map[string][]model.PropertyValue{
			"http://x/aaa":  {{Type: "uri", Value: "http://x/db2"}, {Type: "uri", Value: "http://x/db1"}},
			"http://x/zzz":  {{Type: "literal", Value: "861", Datatype: xsdInt}},
			"http://x/mmm":  {{Type: "uri", Value: "https://card.example/36009"}},
			"http://x/same": {{Type: "literal", Value: "tie"}},
		},
	}, map[string]model.RegistryInfo{
		"http://x/aaa":  {Label: "is from database", Type: "property"},
		"http://x/zzz":  {Label: "has length", Type: "property"},
		"http://x/mmm":  {Label: "card link", Type: "property"},
		"http://x/same": {Label: "card link", Type: "property"},
		"http://x/db1":  {Label: "CARD", Type: "individual"},
	})
	panel := NewPanel(src, NewRegistry())

	view, err := panel.Show(context.Background(), "g")
	require.NoError(t, err)

	var props []string
	for _, row := range view.Properties {
		props = append(props, row.Property.ID)
	}
	assert.Equal(t, []string{"http://x/mmm", "http://x/same", "http://x/zzz", "http://x/aaa"}, props)

	db := view.Properties[3].Values
	require.Len(t, db, 2)
	assert.Equal(t, "http://x/db2", db[0].Ref.ID)
	assert.False(t, db[0].Ref.Internal)
	assert.Equal(t, "http://x/db2", db[0].Ref.Href)
	assert.Equal(t, "CARD", db[1].Ref.Label)
	assert.True(t, db[1].Ref.Internal)

	length := view.Properties[2].Values[0]
	require.NotNil(t, length.Datatype)
	assert.Equal(t, "integer", length.Datatype.Label)
	assert.Equal(t, xsdInt, length.Datatype.Href)
}

func TestShowClassListsSorted(t *testing.T) {
	src := newFakeSource()
	src.details["C"] = mustDetails(model.KindClass, &model.ClassDetails{
		ID: "C", Label: "Class C", Description: "about C",
		SuperClasses: []string{"P"},
		SubClasses:   []string{"S2", "S1"},
		Instances:    []string{"I9", "I1"},
	}, map[string]model.RegistryInfo{
		"P":  {Label: "Parent", Type: "class"},
		"S1": {Label: "zulu", Type: "class"},
		"S2": {Label: "Alpha", Type: "class"},
		"I9": {Label: "a-gene", Type: "individual"},
		"I1": {Label: "b-gene", Type: "individual"},
	})
	panel := NewPanel(src, NewRegistry())

	view, err := panel.Show(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, "about C", view.Description)
	assert.Equal(t, KindClass, view.Kind)

	linkIDs := func(links []CrossLink) []string {
		out := []string{}
		for _, l := range links {
			out = append(out, l.ID)
		}
		return out
	}
	assert.Equal(t, []string{"P"}, linkIDs(view.Parents))
	assert.Equal(t, []string{"S2", "S1"}, linkIDs(view.SubClasses))
	assert.Equal(t, []string{"I9", "I1"}, linkIDs(view.Instances))
	for _, l := range view.Instances {
		assert.True(t, l.Internal)
	}
}

func TestShowFallbackForOtherKinds(t *testing.T) {
	src := newFakeSource()
	src.details["http://x/p"] = rawDetails("property", `{"id":"http://x/p","label":"has part","description":"part-whole"}`)
	src.details["http://x/odd"] = rawDetails("datatype", `{}`)
	panel := NewPanel(src, NewRegistry())

	view, err := panel.Show(context.Background(), "http://x/p")
	require.NoError(t, err)
	assert.True(t, view.Fallback)
	assert.Equal(t, "has part", view.Label)
	assert.Equal(t, "part-whole", view.Description)
	assert.Empty(t, view.Properties)
	assert.Empty(t, view.Parents)

	view, err = panel.Show(context.Background(), "http://x/odd")
	require.NoError(t, err)
	assert.True(t, view.Fallback)
	assert.Equal(t, "http://x/odd", view.ID)
	assert.Equal(t, "odd", view.Label)
}

func TestShowMergesRegistryUpdate(t *testing.T) {
	src := newFakeSource()
	src.details["I"] = mustDetails(model.KindIndividual, &model.IndividualDetails{ID: "I", Label: "i"},
		map[string]model.RegistryInfo{"I": {Label: "i", Type: "individual"}, "T": {Label: "Type", Type: "class"}})
	reg := NewRegistry()
	panel := NewPanel(src, reg)

	_, err := panel.Show(context.Background(), "I")
	require.NoError(t, err)
	got, ok := reg.Lookup("T")
	require.True(t, ok)
	assert.Equal(t, KindClass, got.Kind)
}

func TestShowMalformedDetails(t *testing.T) {
	src := newFakeSource()
	src.details["bad"] = rawDetails("class", `{"superClasses":"not-a-list"}`)
	panel := NewPanel(src, NewRegistry())

	_, err := panel.Show(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, PanelError, panel.Current().State)
}

func TestShowNotFoundLeavesSelection(t *testing.T) {
	src := twoRootSource()
	b := NewBrowser(src)
	ctx := context.Background()
	roots, err := b.Start(ctx)
	require.NoError(t, err)
	b.Explorer.Select(roots[0])

	_, err = b.Panel.Show(ctx, "Z")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	snap := b.Panel.Current()
	assert.Equal(t, PanelError, snap.State)
	assert.Equal(t, "Z", snap.ID)
	assert.Contains(t, snap.ErrorMessage(), "Z")
	assert.Same(t, roots[0], b.Explorer.Selected())
}

func TestShowDiscardsStaleResponse(t *testing.T) {
	src := newFakeSource()
	src.details["old"] = rawDetails("class", `{"id":"old","label":"Old"}`)
	src.details["new"] = rawDetails("class", `{"id":"new","label":"New"}`)
	gate := make(chan struct{})
	src.detailGate["old"] = gate
	panel := NewPanel(src, NewRegistry())

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = panel.Show(context.Background(), "old")
	}()
	require.Eventually(t, func() bool { return panel.Current().ID == "old" }, time.Second, time.Millisecond)

	view, err := panel.Show(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "New", view.Label)

	close(gate)
	wg.Wait()
	assert.ErrorIs(t, staleErr, ErrSuperseded)
	assert.Equal(t, "new", panel.Current().ID)
	assert.Equal(t, "New", panel.Current().View.Label)
}
