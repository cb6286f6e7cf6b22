package main

import (
	"mime"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yumyai/panres/internal/util"
	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/config"
	"github.com/yumyai/panres/pkg/handler"
	"github.com/yumyai/panres/pkg/metric"
	"github.com/yumyai/panres/pkg/middle"
)

const autocompleteRoute = "GET /autocomplete"

func NewRouter(dbctx *handler.DBContext, m *metric.Metrics, cfg *config.Config, reqLog *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Error route
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	// Main routes
	mux.HandleFunc("GET /{$}", dbctx.MainPage)
	mux.HandleFunc("GET /node/{id}", dbctx.NodePage)
	mux.HandleFunc("GET /search", dbctx.SearchPage)

	// API routes
	mux.HandleFunc("GET /api/hierarchy", dbctx.HierarchyAPI)
	mux.HandleFunc("GET /api/children/{id}", dbctx.ChildrenAPI)
	mux.HandleFunc("GET /api/details/{id}", dbctx.DetailsAPI)
	mux.Handle(autocompleteRoute,
		middle.RateLimitMiddleware(newLimiter(cfg.AutocompleteRPS), m, autocompleteRoute)(http.HandlerFunc(dbctx.AutocompleteAPI)))
	mux.HandleFunc("GET /api/v1/health", dbctx.HealthCheck)
	mux.Handle("GET /metrics", m.Handler())

	// Static files
	setupStaticFiles(mux, cfg.StaticDir)

	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
	return middle.Chain(mux,
		middle.RequestIDMiddleware(reqLog),
		middle.LoggingMiddleware(reqLog),
		middle.MetricsMiddleware(m, routeOf),
	)
}

// newLimiter allows rps requests per second with a matching burst. A
// non-positive rate disables limiting.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Manually add static for all route that use this
func setupStaticFiles(mux *http.ServeMux, dir string) {
	if !util.DirExists(dir) {
		logger.Warn("Static directory not found, pages will be unstyled", zap.String("dir", dir))
	}
	_ = mime.AddExtensionType(".js", "text/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	fs := http.FileServer(http.Dir(dir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
}
