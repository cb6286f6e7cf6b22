package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yumyai/panres/internal/testutil"
	"github.com/yumyai/panres/pkg/config"
	"github.com/yumyai/panres/pkg/handler"
	"github.com/yumyai/panres/pkg/metric"
)

func testRouter(t *testing.T, rps float64) http.Handler {
	t.Helper()
	c := config.Default()
	c.StaticDir = t.TempDir()
	c.AutocompleteRPS = rps
	require.NoError(t, os.WriteFile(filepath.Join(c.StaticDir, "style.css"), []byte("body{}"), 0o644))

	m := metric.New()
	dbctx := handler.NewDBContext(testutil.OpenSeeded(t), m, c.AutocompleteLimit)
	return NewRouter(dbctx, m, c, zap.NewNop())
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouterRoutes(t *testing.T) {
	h := testRouter(t, 0)

	cases := []struct {
		target string
		code   int
	}{
		{"/", http.StatusOK},
		{"/api/hierarchy", http.StatusOK},
		{"/api/children/http:%2F%2Fmyonto.com%2FPanResOntology.owl%23Gene", http.StatusOK},
		{"/api/details/http:%2F%2Fmyonto.com%2FPanResOntology.owl%23pan_1", http.StatusOK},
		{"/api/details/missing", http.StatusNotFound},
		{"/node/http:%2F%2Fmyonto.com%2FPanResOntology.owl%23card", http.StatusOK},
		{"/autocomplete?q=bla", http.StatusOK},
		{"/search?q=card", http.StatusOK},
		{"/api/v1/health", http.StatusOK},
		{"/static/style.css", http.StatusOK},
		{"/favicon.ico", http.StatusNotFound},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			rec := serve(h, tc.target)
			assert.Equal(t, tc.code, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouterMetrics(t *testing.T) {
	h := testRouter(t, 0)
	serve(h, "/api/hierarchy")
	serve(h, "/api/children/missing")

	rec := serve(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `panres_http_requests_total{code="200",method="GET",route="GET /api/hierarchy"} 1`)
	assert.Contains(t, body, `route="GET /api/children/{id}"`)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouterRateLimitsAutocomplete(t *testing.T) {
	h := testRouter(t, 0.001)

	assert.Equal(t, http.StatusOK, serve(h, "/autocomplete?q=b").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "/autocomplete?q=bl").Code)
	assert.Equal(t, http.StatusOK, serve(h, "/api/hierarchy").Code)
}

func TestImportFormatOf(t *testing.T) {
	f, err := importFormatOf("data/panres.NT", "")
	require.NoError(t, err)
	assert.Equal(t, "nt", f)

	f, err = importFormatOf("cache.json", "")
	require.NoError(t, err)
	assert.Equal(t, "json", f)

	f, err = importFormatOf("panres.owl", "")
	require.NoError(t, err)
	assert.Equal(t, "owl", f)

	f, err = importFormatOf("panres.rdf", "")
	require.NoError(t, err)
	assert.Equal(t, "owl", f)

	f, err = importFormatOf("panres.ttl", "")
	require.NoError(t, err)
	assert.Equal(t, "ttl", f)

	_, err = importFormatOf("panres.csv", "")
	assert.Error(t, err)

	_, err = importFormatOf("panres", "")
	assert.Error(t, err)

	f, err = importFormatOf("panres.owl", "nt")
	require.NoError(t, err)
	assert.Equal(t, "nt", f)

	_, err = importFormatOf("x.nt", "csv")
	assert.Error(t, err)
}
