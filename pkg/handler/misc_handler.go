// Handler for miscellaneous endpoints such as health check

package handler

import (
	"net/http"
	"time"

	"github.com/yumyai/panres/logger"
	"go.uber.org/zap"
)

type HealthResponse struct {
	Health      string    `json:"health"`
	Timestamp   time.Time `json:"timestamp"`
	Classes     int       `json:"classes"`
	Individuals int       `json:"individuals"`
}

func (dbctx *DBContext) HealthCheck(w http.ResponseWriter, r *http.Request) {
	stats, err := dbctx.Store.Stats(r.Context())
	if err != nil {
		logger.Error("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Health: "unavailable", Timestamp: time.Now()})
		return
	}
	if dbctx.Metrics != nil {
		dbctx.Metrics.SetStoreStats(stats)
	}

	response := HealthResponse{
		Health:      "ok",
		Timestamp:   time.Now(),
		Classes:     stats.Classes,
		Individuals: stats.Individuals,
	}
	writeJSON(w, http.StatusOK, response)
}
