package explorer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/model"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by Show when a newer response was rendered
// first. The stale result is dropped.
var ErrSuperseded = errors.New("detail response superseded")

// Value is one property value: a literal (with optional datatype link) or a
// reference to another node.
type Value struct {
	Literal  string
	Datatype *CrossLink
	Ref      *CrossLink
}

func (v Value) IsLiteral() bool { return v.Ref == nil }

type PropertyRow struct {
	Property CrossLink
	Values   []Value
}

// DetailView is everything a skin needs to draw one node.
type DetailView struct {
	ID          string
	Label       string
	Description string
	Kind        Kind

	// Fallback views carry only label, id and description.
	Fallback bool

	Parents    []CrossLink
	SubClasses []CrossLink
	Instances  []CrossLink

	Types      []CrossLink
	Properties []PropertyRow
}

func sortedLinks(reg *Registry, ids []string) []CrossLink {
	links := make([]CrossLink, 0, len(ids))
	for _, id := range ids {
		links = append(links, ResolveLink(reg, id))
	}
	sort.SliceStable(links, func(i, j int) bool {
		return lessLabel(links[i].Label, links[j].Label, links[i].ID, links[j].ID)
	})
	return links
}

func displayOr(reg *Registry, id, label string) string {
	if label != "" {
		return label
	}
	return reg.DisplayLabel(id)
}

// BuildDetailView turns a details response into a view, resolving every
// referenced id through reg. It does not modify reg.
func BuildDetailView(resp *model.DetailsResponse, reg *Registry) (*DetailView, error) {
	switch resp.Type {
	case model.KindClass:
		cls, err := resp.Class()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return &DetailView{
			ID:          cls.ID,
			Label:       displayOr(reg, cls.ID, cls.Label),
			Description: cls.Description,
			Kind:        KindClass,
			Parents:     sortedLinks(reg, cls.SuperClasses),
			SubClasses:  sortedLinks(reg, cls.SubClasses),
			Instances:   sortedLinks(reg, cls.Instances),
		}, nil

	case model.KindIndividual:
		ind, err := resp.Individual()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		view := &DetailView{
			ID:          ind.ID,
			Label:       displayOr(reg, ind.ID, ind.Label),
			Description: ind.Description,
			Kind:        KindIndividual,
			Types:       make([]CrossLink, 0, len(ind.Types)),
			Properties:  make([]PropertyRow, 0, len(ind.Properties)),
		}
		for _, t := range ind.Types {
			view.Types = append(view.Types, ResolveLink(reg, t))
		}
		for prop, values := range ind.Properties {
			row := PropertyRow{Property: ResolveLink(reg, prop), Values: make([]Value, 0, len(values))}
			for _, v := range values {
				row.Values = append(row.Values, buildValue(reg, v))
			}
			view.Properties = append(view.Properties, row)
		}
		sort.Slice(view.Properties, func(i, j int) bool {
			a, b := view.Properties[i].Property, view.Properties[j].Property
			return lessLabel(a.Label, b.Label, a.ID, b.ID)
		})
		return view, nil
	}

	basic, err := resp.Basic()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &DetailView{
		ID:          basic.ID,
		Label:       displayOr(reg, basic.ID, basic.Label),
		Description: basic.Description,
		Kind:        parseKind(resp.Type),
		Fallback:    true,
	}, nil
}

func buildValue(reg *Registry, v model.PropertyValue) Value {
	if v.Type == "uri" {
		link := ResolveLink(reg, v.Value)
		return Value{Ref: &link}
	}
	out := Value{Literal: v.Value}
	if v.Datatype != "" {
		dt := ResolveLink(reg, v.Datatype)
		out.Datatype = &dt
	}
	return out
}

type PanelState int

const (
	PanelEmpty PanelState = iota
	PanelLoading
	PanelReady
	PanelError
)

// PanelSnapshot is what the panel currently shows.
type PanelSnapshot struct {
	State PanelState
	ID    string
	View  *DetailView
	Err   error
}

// ErrorMessage is the inline error text, naming the id that failed.
func (s PanelSnapshot) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	if IsNotFound(s.Err) {
		return fmt.Sprintf("No details found for %s", s.ID)
	}
	return fmt.Sprintf("Could not load details for %s: %v", s.ID, s.Err)
}

// Panel shows the details of one node at a time.
type Panel struct {
	src Source
	reg *Registry

	mu       sync.Mutex
	issued   uint64
	rendered uint64
	current  PanelSnapshot
}

func NewPanel(src Source, reg *Registry) *Panel {
	return &Panel{src: src, reg: reg}
}

// Show fetches and renders id. Requests are numbered; a response older
// than the one already rendered is discarded with ErrSuperseded.
func (p *Panel) Show(ctx context.Context, id string) (*DetailView, error) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.current = PanelSnapshot{State: PanelLoading, ID: id}
	p.mu.Unlock()

	var view *DetailView
	resp, err := p.src.Details(ctx, id)
	if err == nil {
		p.reg.MergeWire(resp.URIRegistryUpdate)
		view, err = BuildDetailView(resp, p.reg)
	}
	if view != nil && view.ID == "" {
		view.ID = id
		if view.Label == "" {
			view.Label = p.reg.DisplayLabel(id)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq < p.rendered {
		return nil, ErrSuperseded
	}
	p.rendered = seq

	if err != nil {
		logger.Debug("Detail fetch failed", zap.String("id", id), zap.Error(err))
		p.current = PanelSnapshot{State: PanelError, ID: id, Err: err}
		return nil, err
	}
	p.current = PanelSnapshot{State: PanelReady, ID: id, View: view}
	return view, nil
}

func (p *Panel) Current() PanelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
