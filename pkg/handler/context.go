package handler

// DI for all handlers and models alike.

import (
	"database/sql"

	"github.com/yumyai/panres/pkg/db"
	"github.com/yumyai/panres/pkg/metric"
)

type DBContext struct {
	DB                *sql.DB
	Store             *db.OntoDB
	Metrics           *metric.Metrics
	AutocompleteLimit int
}

func NewDBContext(store *db.OntoDB, m *metric.Metrics, autocompleteLimit int) *DBContext {
	return &DBContext{
		DB:                store.SQL(),
		Store:             store,
		Metrics:           m,
		AutocompleteLimit: autocompleteLimit,
	}
}
