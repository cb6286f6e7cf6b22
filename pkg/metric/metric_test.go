package metric

import (
	"io"
	"net/http/httptest"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/panres/pkg/db"
)

func TestSetStoreStats(t *testing.T) {
	m := New()
	m.SetStoreStats(db.Stats{Classes: 9, Individuals: 5, Properties: 6})

	assert.Equal(t, 9.0, promtest.ToFloat64(m.StoreNodes.WithLabelValues("class")))
	assert.Equal(t, 5.0, promtest.ToFloat64(m.StoreNodes.WithLabelValues("individual")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.RequestsTotal.WithLabelValues("GET /api/hierarchy", "GET", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `panres_http_requests_total{code="200",method="GET",route="GET /api/hierarchy"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
