package explorer

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/yumyai/panres/pkg/model"
)

// fakeSource serves canned responses and counts requests. A non-nil gate
// blocks Children until it is closed. Children fails once ctx is done.
type fakeSource struct {
	hierarchy *model.HierarchyResponse
	children  map[string]*model.ChildrenResponse
	details   map[string]*model.DetailsResponse
	errs      map[string]error

	gate       chan struct{}
	detailGate map[string]chan struct{}

	hierarchyCalls atomic.Int32
	mu             sync.Mutex
	childCalls     map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		hierarchy:  &model.HierarchyResponse{URIRegistry: map[string]model.RegistryInfo{}},
		children:   map[string]*model.ChildrenResponse{},
		details:    map[string]*model.DetailsResponse{},
		errs:       map[string]error{},
		detailGate: map[string]chan struct{}{},
		childCalls: map[string]int{},
	}
}

func (f *fakeSource) Hierarchy(ctx context.Context) (*model.HierarchyResponse, error) {
	f.hierarchyCalls.Add(1)
	if err := f.errs["hierarchy"]; err != nil {
		return nil, err
	}
	return f.hierarchy, nil
}

func (f *fakeSource) Children(ctx context.Context, id string) (*model.ChildrenResponse, error) {
	f.mu.Lock()
	f.childCalls[id]++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	resp, ok := f.children[id]
	if !ok {
		return nil, &StatusError{StatusCode: 404, Path: "/api/children/" + id}
	}
	return resp, nil
}

func (f *fakeSource) Details(ctx context.Context, id string) (*model.DetailsResponse, error) {
	if g := f.detailGate[id]; g != nil {
		<-g
	}
	resp, ok := f.details[id]
	if !ok {
		return nil, &StatusError{StatusCode: 404, Message: "Node not found", Path: "/api/details/" + id}
	}
	return resp, nil
}

func (f *fakeSource) calls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.childCalls[id]
}

func (f *fakeSource) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.childCalls {
		n += c
	}
	return n
}

func mustDetails(kind string, details any, update map[string]model.RegistryInfo) *model.DetailsResponse {
	resp, err := model.NewDetailsResponse(kind, details, update)
	if err != nil {
		panic(err)
	}
	return resp
}

func rawDetails(kind, body string) *model.DetailsResponse {
	return &model.DetailsResponse{Type: kind, Details: json.RawMessage(body)}
}
