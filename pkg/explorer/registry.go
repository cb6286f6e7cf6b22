package explorer

import (
	"strings"
	"sync"

	"github.com/yumyai/panres/pkg/model"
)

// Kind is what the Registry knows about a node.
type Kind string

const (
	KindUnknown    Kind = ""
	KindClass      Kind = model.KindClass
	KindIndividual Kind = model.KindIndividual
	KindProperty   Kind = model.KindProperty
)

func parseKind(s string) Kind {
	switch Kind(s) {
	case KindClass, KindIndividual, KindProperty:
		return Kind(s)
	}
	return KindUnknown
}

// NodeInfo is the best-known data for one id. Zero fields are "absent".
type NodeInfo struct {
	Label         string
	Kind          Kind
	HasSubClasses *bool
	HasInstances  *bool
}

// Registry maps ids to labels and kinds for the lifetime of one session.
// Entries are merged field by field and never removed.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]NodeInfo
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]NodeInfo)}
}

// Merge folds update into the registry. A present field overwrites, an
// absent one leaves the stored value alone.
func (r *Registry) Merge(update map[string]NodeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, in := range update {
		cur := r.entries[id]
		if in.Label != "" {
			cur.Label = in.Label
		}
		if in.Kind != KindUnknown {
			cur.Kind = in.Kind
		}
		if in.HasSubClasses != nil {
			cur.HasSubClasses = boolPtr(*in.HasSubClasses)
		}
		if in.HasInstances != nil {
			cur.HasInstances = boolPtr(*in.HasInstances)
		}
		r.entries[id] = cur
	}
}

// MergeWire merges a uriRegistry map from the API.
func (r *Registry) MergeWire(update map[string]model.RegistryInfo) {
	if len(update) == 0 {
		return
	}
	conv := make(map[string]NodeInfo, len(update))
	for id, info := range update {
		conv[id] = NodeInfo{Label: info.Label, Kind: parseKind(info.Type)}
	}
	r.Merge(conv)
}

func (r *Registry) Lookup(id string) (NodeInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.entries[id]
	return info, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// DisplayLabel returns the stored label or one derived from the id.
func (r *Registry) DisplayLabel(id string) string {
	if info, ok := r.Lookup(id); ok && info.Label != "" {
		return info.Label
	}
	return DeriveLabel(id)
}

// DeriveLabel is the fragment after the last '#', else the last '/'
// segment, else the id itself.
func DeriveLabel(id string) string {
	if i := strings.LastIndexByte(id, '#'); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	if i := strings.LastIndexByte(id, '/'); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}

func boolPtr(b bool) *bool { return &b }
