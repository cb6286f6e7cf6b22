package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/panres/internal/testutil"
	"github.com/yumyai/panres/pkg/db"
)

func TestImportCounts(t *testing.T) {
	store := testutil.OpenSeeded(t)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, db.Stats{Classes: 9, Individuals: 5, Properties: 6}, stats)
}

func TestImportReplacesContents(t *testing.T) {
	store := testutil.OpenSeeded(t)
	ctx := context.Background()

	cache := testutil.SampleCache()
	delete(cache.IndividualDetails, testutil.Pan2)

	stats, err := store.Import(ctx, cache)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Individuals)

	var n int
	row := store.SQL().QueryRowContext(ctx, `SELECT COUNT(*) FROM search_index WHERE id = ?`, testutil.Pan2)
	require.NoError(t, row.Scan(&n))
	assert.Zero(t, n)
}

func TestSearchIndexRows(t *testing.T) {
	store := testutil.OpenSeeded(t)
	ctx := context.Background()

	var kind, typeLabel string
	row := store.SQL().QueryRowContext(ctx,
		`SELECT kind, type_label FROM search_index WHERE search_index MATCH ?`, `label:"aac"*`)
	require.NoError(t, row.Scan(&kind, &typeLabel))
	assert.Equal(t, "individual", kind)
	assert.Equal(t, "Pan gene", typeLabel)

	row = store.SQL().QueryRowContext(ctx,
		`SELECT type_label FROM search_index WHERE id = ?`, testutil.HasResClass)
	require.NoError(t, row.Scan(&typeLabel))
	assert.Equal(t, "Property", typeLabel)
}

func TestAssertionOrderKept(t *testing.T) {
	store := testutil.OpenSeeded(t)

	rows, err := store.SQL().QueryContext(context.Background(), `
		SELECT value FROM assertions WHERE subject_id = ? AND property_id = ? ORDER BY position`,
		testutil.Pan1, testutil.IsFromDatabase)
	require.NoError(t, err)
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		values = append(values, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{testutil.ResFinder, testutil.CARD}, values)
}

func TestOpenFileReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panres.db")

	store, err := db.Open(path)
	require.NoError(t, err)
	_, err = store.Import(context.Background(), testutil.SampleCache())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	again, err := db.Open(path)
	require.NoError(t, err)
	defer again.Close()

	stats, err := again.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Classes)
}
