package explorer

import (
	"context"
)

// CrossLink is a rendered reference to another node.
type CrossLink struct {
	ID    string
	Label string

	// Internal links re-target the explorer and panel. Others are plain
	// outbound links to Href, opened in a new browsing context.
	Internal bool
	Href     string
}

// ResolveLink applies the link policy: classes and individuals the
// registry knows are navigable in-app; properties, unknown kinds and ids
// the registry has never seen link out to the id itself.
func ResolveLink(reg *Registry, id string) CrossLink {
	link := CrossLink{ID: id, Label: reg.DisplayLabel(id)}
	info, ok := reg.Lookup(id)
	if ok && (info.Kind == KindClass || info.Kind == KindIndividual) {
		link.Internal = true
		return link
	}
	link.Href = id
	return link
}

// Navigator performs the in-app action of an internal link.
type Navigator interface {
	RevealAndSelect(ctx context.Context, id string) (*DetailView, error)
}

// Resolver decides and performs cross-link behaviour.
type Resolver struct {
	reg *Registry
	nav Navigator
}

func NewResolver(reg *Registry, nav Navigator) *Resolver {
	return &Resolver{reg: reg, nav: nav}
}

func (r *Resolver) Resolve(id string) CrossLink {
	return ResolveLink(r.reg, id)
}

// Follow runs the in-app action for an internal link. External links are
// returned untouched for the caller to open.
func (r *Resolver) Follow(ctx context.Context, id string) (CrossLink, error) {
	link := r.Resolve(id)
	if !link.Internal || r.nav == nil {
		return link, nil
	}
	_, err := r.nav.RevealAndSelect(ctx, id)
	return link, err
}
