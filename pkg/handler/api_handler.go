package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/handler/request"
	"github.com/yumyai/panres/pkg/model"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encoding response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// writeQueryError maps a model error to a JSON error answer.
func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	logger.Error("Query failed", zap.String("url", r.URL.EscapedPath()), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (dbctx *DBContext) HierarchyAPI(w http.ResponseWriter, r *http.Request) {
	resp, err := model.GetHierarchy(r.Context(), dbctx.DB)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (dbctx *DBContext) ChildrenAPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	logger.Debug("Children of", zap.String("id", id))

	resp, err := model.GetChildren(r.Context(), dbctx.DB, id)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (dbctx *DBContext) DetailsAPI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	logger.Debug("Details of", zap.String("id", id))

	resp, err := model.GetDetails(r.Context(), dbctx.DB, id)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (dbctx *DBContext) AutocompleteAPI(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseAutocomplete(r.URL.Query(), dbctx.AutocompleteLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := model.Autocomplete(r.Context(), dbctx.DB, req.Query, req.Limit)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
