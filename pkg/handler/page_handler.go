package handler

import (
	"errors"
	"net/http"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/explorer"
	"github.com/yumyai/panres/pkg/handler/request"
	"github.com/yumyai/panres/pkg/model"
	"github.com/yumyai/panres/pkg/render"
	"go.uber.org/zap"
)

func (dbctx *DBContext) MainPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	hierarchy, err := model.GetHierarchy(r.Context(), dbctx.DB)
	if err != nil {
		logger.Error("Failed to load root classes", zap.Error(err))
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
		return
	}
	stats, err := dbctx.Store.Stats(r.Context())
	if err != nil {
		logger.Error("Failed to count nodes", zap.Error(err))
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = render.RenderIndexPage(w, hierarchy.TopClasses, render.IndexStats{
		Classes:     stats.Classes,
		Individuals: stats.Individuals,
		Properties:  stats.Properties,
	})
	if err != nil {
		logger.Error("Rendering index failed", zap.Error(err))
	}
}

// NodePage renders a node with the same view and link policy the
// interactive browser uses. Each request gets its own registry.
func (dbctx *DBContext) NodePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resp, err := model.GetDetails(r.Context(), dbctx.DB, id)
	if errors.Is(err, model.ErrNotFound) {
		http.Error(w, "Node not found: "+id, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("Failed to load node", zap.String("id", id), zap.Error(err))
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
		return
	}

	reg := explorer.NewRegistry()
	reg.MergeWire(resp.URIRegistryUpdate)
	view, err := explorer.BuildDetailView(resp, reg)
	if err != nil {
		logger.Error("Failed to build node view", zap.String("id", id), zap.Error(err))
		http.Error(w, "Failed to render node", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderNodePage(w, view); err != nil {
		logger.Error("Rendering node failed", zap.String("id", id), zap.Error(err))
	}
}

func (dbctx *DBContext) SearchPage(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseAutocomplete(r.URL.Query(), dbctx.AutocompleteLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := model.Autocomplete(r.Context(), dbctx.DB, req.Query, req.Limit)
	if err != nil {
		logger.Error("Search failed", zap.String("q", req.Query), zap.Error(err))
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderSearchPage(w, req.Query, items); err != nil {
		logger.Error("Rendering search failed", zap.Error(err))
	}
}
