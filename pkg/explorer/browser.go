package explorer

import (
	"context"
)

// Browser wires one session's Registry, Explorer, Panel and Resolver over a
// single Source. Skins drive it.
type Browser struct {
	Registry *Registry
	Explorer *Explorer
	Panel    *Panel
	Resolver *Resolver
}

func NewBrowser(src Source) *Browser {
	reg := NewRegistry()
	b := &Browser{
		Registry: reg,
		Explorer: NewExplorer(src, reg),
		Panel:    NewPanel(src, reg),
	}
	b.Resolver = NewResolver(reg, b)
	return b
}

// Start loads the root classes.
func (b *Browser) Start(ctx context.Context) ([]*TreeNode, error) {
	return b.Explorer.LoadRoots(ctx)
}

// RevealAndSelect selects id in the tree when it is materialised and shows
// it in the panel either way. An id outside the tree leaves no selection.
func (b *Browser) RevealAndSelect(ctx context.Context, id string) (*DetailView, error) {
	b.Explorer.Reveal(id)
	return b.Panel.Show(ctx, id)
}

// Select is a click on a tree row.
func (b *Browser) Select(ctx context.Context, n *TreeNode) (*DetailView, error) {
	b.Explorer.Select(n)
	return b.Panel.Show(ctx, n.ID())
}

// Follow activates a cross-link.
func (b *Browser) Follow(ctx context.Context, id string) (CrossLink, error) {
	return b.Resolver.Follow(ctx, id)
}
