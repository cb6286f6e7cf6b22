package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/panres/internal/testutil"
	"github.com/yumyai/panres/pkg/explorer"
	"github.com/yumyai/panres/pkg/model"
)

func seededBrowser(t *testing.T) *explorer.Browser {
	t.Helper()
	return explorer.NewBrowser(&explorer.LocalSource{DB: testutil.OpenSeeded(t).SQL()})
}

// drive runs cmd and feeds every resulting message back into m.
func drive(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		_, cmd := m.Update(k)
		drive(m, cmd)
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, b *explorer.Browser) *Model {
	t.Helper()
	m := NewModel(context.Background(), b)
	drive(m, m.Init())
	return m
}

func visibleLabels(b *explorer.Browser) []string {
	var out []string
	for _, row := range b.Explorer.Visible() {
		if !row.Placeholder() {
			out = append(out, row.Node.Label())
		}
	}
	return out
}

func TestModelExpandAndSelect(t *testing.T) {
	b := seededBrowser(t)
	m := newTestModel(t, b)
	assert.Empty(t, m.Banner())
	assert.Equal(t, []string{"Database", "Gene", "Resistance type", "Unclassified"}, visibleLabels(b))

	press(m, down, runeKey('l'))
	assert.Equal(t, []string{"Database", "Gene", "Original gene", "Pan gene", "Resistance type", "Unclassified"}, visibleLabels(b))

	press(m, down, down, runeKey('l'))
	assert.Equal(t, []string{"Database", "Gene", "Original gene", "Pan gene", "aac(6')-Ib", "blaTEM-1", "Resistance type", "Unclassified"}, visibleLabels(b))

	press(m, down, enter)
	snap := b.Panel.Current()
	require.Equal(t, explorer.PanelReady, snap.State)
	assert.Equal(t, "aac(6')-Ib", snap.View.Label)
	assert.Equal(t, testutil.Pan2, b.Explorer.Selected().ID())

	// collapse from a child moves to the parent, then closes it
	press(m, runeKey('h'), runeKey('h'))
	assert.Equal(t, []string{"Database", "Gene", "Original gene", "Pan gene", "Resistance type", "Unclassified"}, visibleLabels(b))

	// toggling reopens without a fetch
	press(m, runeKey('t'))
	assert.Contains(t, visibleLabels(b), "blaTEM-1")

	assert.Contains(t, m.View(), "aac(6')-Ib")
}

func TestModelFollowLinks(t *testing.T) {
	b := seededBrowser(t)
	m := newTestModel(t, b)

	_, err := b.RevealAndSelect(context.Background(), testutil.Pan1)
	require.NoError(t, err)
	links := DetailLinks(b.Panel.Current().View)
	require.Len(t, links, 6)
	assert.Equal(t, "Pan gene", links[0].Label)
	assert.False(t, links[1].Internal)
	assert.Equal(t, "Beta-lactam", links[2].Label)
	assert.Equal(t, []string{"ResFinder", "CARD"}, []string{links[3].Label, links[4].Label})

	press(m, tab, down, enter)
	assert.Equal(t, "External link: "+testutil.CardLinkTarget, m.Status())
	assert.Equal(t, testutil.Pan1, b.Panel.Current().ID)

	press(m, esc)
	assert.Empty(t, m.Status())

	press(m, down, enter)
	snap := b.Panel.Current()
	require.Equal(t, explorer.PanelReady, snap.State)
	assert.Equal(t, "Beta-lactam", snap.View.Label)
	assert.Nil(t, b.Explorer.Selected())

	press(m, up)
	assert.Contains(t, m.View(), "Antibiotic resistance class")
}

func TestModelFollowRevealsMaterialisedNode(t *testing.T) {
	b := seededBrowser(t)
	m := newTestModel(t, b)

	// Database is first and holds CARD and ResFinder
	press(m, runeKey('l'))
	_, err := b.RevealAndSelect(context.Background(), testutil.Pan1)
	require.NoError(t, err)

	press(m, tab, down, down, down, down, enter)
	require.NotNil(t, b.Explorer.Selected())
	assert.Equal(t, testutil.CARD, b.Explorer.Selected().ID())
	assert.Equal(t, "CARD", b.Panel.Current().View.Label)
	assert.Equal(t, 1, m.cursor)
}

type failingSource struct{ calls int }

func (f *failingSource) Hierarchy(context.Context) (*model.HierarchyResponse, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func (f *failingSource) Children(context.Context, string) (*model.ChildrenResponse, error) {
	return nil, explorer.ErrNotFound
}

func (f *failingSource) Details(context.Context, string) (*model.DetailsResponse, error) {
	return nil, explorer.ErrNotFound
}

func TestModelBanner(t *testing.T) {
	src := &failingSource{}
	m := newTestModel(t, explorer.NewBrowser(src))
	assert.Contains(t, m.Banner(), "connection refused")
	assert.Contains(t, m.View(), "connection refused")

	press(m, esc)
	assert.Empty(t, m.Banner())

	press(m, runeKey('r'))
	assert.Equal(t, 2, src.calls)
	assert.NotEmpty(t, m.Banner())
}

func TestModelDetailError(t *testing.T) {
	b := seededBrowser(t)
	m := newTestModel(t, b)

	_, err := b.Panel.Show(context.Background(), "http://nowhere.org/Z")
	require.Error(t, err)
	assert.Contains(t, m.View(), "No details found for http://nowhere.org/Z")
}

func TestRenderTree(t *testing.T) {
	b := seededBrowser(t)
	ctx := context.Background()
	roots, err := b.Start(ctx)
	require.NoError(t, err)
	_, err = b.Explorer.Expand(ctx, roots[0])
	require.NoError(t, err)
	b.Explorer.Reveal(testutil.CARD)

	got := RenderTree(b.Explorer.Visible())
	want := strings.Join([]string{
		"▾ Database",
		"  · CARD *",
		"  · ResFinder",
		"▸ Gene",
		"▸ Resistance type",
		"  Unclassified",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestRenderDetail(t *testing.T) {
	b := seededBrowser(t)
	view, err := b.RevealAndSelect(context.Background(), testutil.Pan1)
	require.NoError(t, err)

	out := RenderDetail(view)
	assert.True(t, strings.HasPrefix(out, "blaTEM-1 [individual]\n"+testutil.Pan1+"\n"))
	assert.Contains(t, out, "Types:\n  Pan gene\n")
	assert.Contains(t, out, "  has length: 861 (integer)\n")
	assert.Contains(t, out, "  card link: 36009 <"+testutil.CardLinkTarget+">\n")
	assert.Contains(t, out, "  is from database: ResFinder, CARD\n")

	fallback := RenderDetail(&explorer.DetailView{ID: "http://x/p", Label: "has part", Kind: explorer.KindProperty, Fallback: true})
	assert.Equal(t, "has part [property]\nhttp://x/p\n", fallback)
}
