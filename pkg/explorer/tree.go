package explorer

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/model"
	"go.uber.org/zap"
)

type LoadState int

const (
	Unloaded LoadState = iota
	Loading
	Loaded
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	}
	return "unloaded"
}

// TreeNode is one occurrence of a class or individual in the tree. A class
// reachable through several parents has one TreeNode per position.
//
// The exported getters read fields fixed at creation. Load state,
// expansion and children belong to the Explorer and are read through it.
type TreeNode struct {
	id            string
	kind          Kind
	label         string
	hasSubClasses bool
	hasInstances  bool
	parent        *TreeNode
	depth         int

	state    LoadState
	expanded bool
	children []*TreeNode
	err      error
}

func (n *TreeNode) ID() string          { return n.id }
func (n *TreeNode) Kind() Kind          { return n.kind }
func (n *TreeNode) Label() string       { return n.label }
func (n *TreeNode) Parent() *TreeNode   { return n.parent }
func (n *TreeNode) Depth() int          { return n.depth }
func (n *TreeNode) HasSubClasses() bool { return n.hasSubClasses }
func (n *TreeNode) HasInstances() bool  { return n.hasInstances }

// Expandable reports whether the node draws an expand control.
func (n *TreeNode) Expandable() bool {
	return n.kind == KindClass && (n.hasSubClasses || n.hasInstances)
}

// childSet is the fetched content of one class, shared by all its occurrences.
type childSet struct {
	subClasses []model.ClassSummary
	instances  []model.InstanceSummary
	err        error
}

// Explorer is the lazily materialised class/instance tree.
type Explorer struct {
	src   Source
	reg   *Registry
	group singleflight.Group

	mu          sync.Mutex
	roots       []*TreeNode
	rootsLoaded bool
	byID        map[string][]*TreeNode
	childSets   map[string]*childSet
	selected    *TreeNode
}

func NewExplorer(src Source, reg *Registry) *Explorer {
	return &Explorer{
		src:       src,
		reg:       reg,
		byID:      make(map[string][]*TreeNode),
		childSets: make(map[string]*childSet),
	}
}

func (e *Explorer) Registry() *Registry {
	return e.reg
}

func lessLabel(a, b, idA, idB string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}

func (e *Explorer) labelFor(id, label string) string {
	if label != "" {
		return label
	}
	return e.reg.DisplayLabel(id)
}

// newNode must be called with e.mu held.
func (e *Explorer) newNode(id string, kind Kind, label string, hasSub, hasInst bool, parent *TreeNode) *TreeNode {
	n := &TreeNode{
		id:            id,
		kind:          kind,
		label:         e.labelFor(id, label),
		hasSubClasses: hasSub,
		hasInstances:  hasInst,
		parent:        parent,
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	e.byID[id] = append(e.byID[id], n)
	return n
}

// LoadRoots fetches the top classes once. Later calls return the same
// nodes without a request. A failure is not cached.
func (e *Explorer) LoadRoots(ctx context.Context) ([]*TreeNode, error) {
	e.mu.Lock()
	if e.rootsLoaded {
		roots := e.roots
		e.mu.Unlock()
		return roots, nil
	}
	e.mu.Unlock()

	_, err, _ := e.group.Do("\x00roots", func() (any, error) {
		e.mu.Lock()
		done := e.rootsLoaded
		e.mu.Unlock()
		if done {
			return nil, nil
		}

		resp, err := e.src.Hierarchy(ctx)
		if err != nil {
			logger.Warn("Loading hierarchy failed", zap.Error(err))
			return nil, err
		}
		e.reg.MergeWire(resp.URIRegistry)
		e.reg.Merge(classInfos(resp.TopClasses))

		top := append([]model.ClassSummary(nil), resp.TopClasses...)
		sort.SliceStable(top, func(i, j int) bool {
			return lessLabel(e.labelFor(top[i].ID, top[i].Label), e.labelFor(top[j].ID, top[j].Label), top[i].ID, top[j].ID)
		})

		e.mu.Lock()
		defer e.mu.Unlock()
		for _, c := range top {
			e.roots = append(e.roots, e.newNode(c.ID, KindClass, c.Label, c.HasSubClasses, c.HasInstances, nil))
		}
		e.rootsLoaded = true
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roots, nil
}

func (e *Explorer) Roots() []*TreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roots
}

func classInfos(classes []model.ClassSummary) map[string]NodeInfo {
	out := make(map[string]NodeInfo, len(classes))
	for _, c := range classes {
		out[c.ID] = NodeInfo{
			Label:         c.Label,
			Kind:          KindClass,
			HasSubClasses: boolPtr(c.HasSubClasses),
			HasInstances:  boolPtr(c.HasInstances),
		}
	}
	return out
}

// Expand loads and opens a class node. It is a no-op on a loaded node and
// needs no request when the node has neither subclasses nor instances.
// Concurrent calls for the same class share one fetch and return the
// same children.
func (e *Explorer) Expand(ctx context.Context, n *TreeNode) ([]*TreeNode, error) {
	e.mu.Lock()
	if n.kind != KindClass || n.state == Loaded {
		children, err := n.children, n.err
		e.mu.Unlock()
		return children, err
	}
	if !n.Expandable() {
		n.state, n.expanded = Loaded, true
		e.mu.Unlock()
		return nil, nil
	}
	if cs, ok := e.childSets[n.id]; ok {
		e.materialize(n, cs)
		children := n.children
		e.mu.Unlock()
		return children, cs.err
	}
	n.state = Loading
	e.mu.Unlock()

	_, _, _ = e.group.Do(n.id, func() (any, error) {
		e.mu.Lock()
		_, cached := e.childSets[n.id]
		e.mu.Unlock()
		if cached {
			return nil, nil
		}

		cs := e.fetchChildren(context.WithoutCancel(ctx), n.id)

		e.mu.Lock()
		e.childSets[n.id] = cs
		e.mu.Unlock()
		return nil, nil
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	cs := e.childSets[n.id]
	e.materialize(n, cs)
	return n.children, cs.err
}

func (e *Explorer) fetchChildren(ctx context.Context, classID string) *childSet {
	resp, err := e.src.Children(ctx, classID)
	if err != nil {
		logger.Warn("Expanding class failed", zap.String("id", classID), zap.Error(err))
		return &childSet{err: err}
	}

	info := classInfos(resp.SubClasses)
	for _, inst := range resp.Instances {
		info[inst.ID] = NodeInfo{Label: inst.Label, Kind: KindIndividual}
	}
	e.reg.Merge(info)

	cs := &childSet{
		subClasses: append([]model.ClassSummary(nil), resp.SubClasses...),
		instances:  append([]model.InstanceSummary(nil), resp.Instances...),
	}
	sort.SliceStable(cs.subClasses, func(i, j int) bool {
		a, b := cs.subClasses[i], cs.subClasses[j]
		return lessLabel(e.labelFor(a.ID, a.Label), e.labelFor(b.ID, b.Label), a.ID, b.ID)
	})
	sort.SliceStable(cs.instances, func(i, j int) bool {
		a, b := cs.instances[i], cs.instances[j]
		return lessLabel(e.labelFor(a.ID, a.Label), e.labelFor(b.ID, b.Label), a.ID, b.ID)
	})
	return cs
}

// materialize builds n's children from cs. Must be called with e.mu held.
func (e *Explorer) materialize(n *TreeNode, cs *childSet) {
	if n.state == Loaded {
		return
	}
	n.state, n.expanded = Loaded, true
	if cs.err != nil {
		n.err = cs.err
		return
	}
	n.children = make([]*TreeNode, 0, len(cs.subClasses)+len(cs.instances))
	for _, c := range cs.subClasses {
		n.children = append(n.children, e.newNode(c.ID, KindClass, c.Label, c.HasSubClasses, c.HasInstances, n))
	}
	for _, inst := range cs.instances {
		n.children = append(n.children, e.newNode(inst.ID, KindIndividual, inst.Label, false, false, n))
	}
}

// Collapse hides a loaded node's children.
func (e *Explorer) Collapse(n *TreeNode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n.state == Loaded {
		n.expanded = false
	}
}

// Toggle flips a loaded node and expands an unloaded one.
func (e *Explorer) Toggle(ctx context.Context, n *TreeNode) error {
	e.mu.Lock()
	if n.state == Loaded {
		n.expanded = !n.expanded
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	_, err := e.Expand(ctx, n)
	return err
}

func (e *Explorer) State(n *TreeNode) LoadState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return n.state
}

func (e *Explorer) Expanded(n *TreeNode) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return n.expanded
}

func (e *Explorer) Children(n *TreeNode) []*TreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return n.children
}

// Err is the expansion failure shown in place of n's children.
func (e *Explorer) Err(n *TreeNode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return n.err
}

// Find returns the first materialised occurrence of id.
func (e *Explorer) Find(id string) *TreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if occ := e.byID[id]; len(occ) > 0 {
		return occ[0]
	}
	return nil
}

// Reveal opens every ancestor of a materialised id and selects it. For an
// id not in the tree it clears the selection and returns false.
func (e *Explorer) Reveal(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	occ := e.byID[id]
	if len(occ) == 0 {
		e.selected = nil
		return false
	}
	n := occ[0]
	for p := n.parent; p != nil; p = p.parent {
		p.expanded = true
	}
	e.selected = n
	return true
}

func (e *Explorer) Select(n *TreeNode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = n
}

func (e *Explorer) ClearSelection() {
	e.Select(nil)
}

func (e *Explorer) Selected() *TreeNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Row is one visible line of the tree. Placeholder rows (loading, error,
// no children) carry the node they stand under.
type Row struct {
	Node       *TreeNode
	Depth      int
	Expandable bool
	Expanded   bool
	Selected   bool

	Loading bool
	Err     error
	Empty   bool
}

// Placeholder reports whether the row stands in for missing children.
func (r Row) Placeholder() bool {
	return r.Loading || r.Err != nil || r.Empty
}

// Visible flattens the open part of the tree in display order.
func (e *Explorer) Visible() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()

	var rows []Row
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		rows = append(rows, Row{
			Node:       n,
			Depth:      n.depth,
			Expandable: n.Expandable(),
			Expanded:   n.expanded,
			Selected:   n == e.selected,
		})
		switch {
		case n.state == Loading:
			rows = append(rows, Row{Node: n, Depth: n.depth + 1, Loading: true})
		case n.state != Loaded || !n.expanded:
		case n.err != nil:
			rows = append(rows, Row{Node: n, Depth: n.depth + 1, Err: n.err})
		case len(n.children) == 0:
			rows = append(rows, Row{Node: n, Depth: n.depth + 1, Empty: true})
		default:
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	for _, r := range e.roots {
		walk(r)
	}
	return rows
}
