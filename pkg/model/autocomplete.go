package model

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const DefaultAutocompleteLimit = 10

// ftsQuery turns free text into an FTS5 prefix query: every word must
// match the start of a token in the label or local name.
func ftsQuery(q string) string {
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = `"` + w + `"*`
	}
	return strings.Join(terms, " ")
}

// NodeLink is the page path for id, escaped once.
func NodeLink(id string) string {
	return "/node/" + url.PathEscape(id)
}

// Autocomplete returns up to limit search hits for q, best match first.
func Autocomplete(ctx context.Context, db *sql.DB, q string, limit int) ([]AutocompleteItem, error) {
	items := make([]AutocompleteItem, 0)

	match := ftsQuery(q)
	if match == "" {
		return items, nil
	}
	if limit <= 0 {
		limit = DefaultAutocompleteLimit
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, label, type_label
		FROM search_index
		WHERE search_index MATCH ?
		ORDER BY rank, label
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", q, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var item AutocompleteItem
		if err := rows.Scan(&id, &item.DisplayName, &item.TypeIndicator); err != nil {
			return nil, fmt.Errorf("scanning autocomplete hit: %w", err)
		}
		item.Link = NodeLink(id)
		items = append(items, item)
	}
	return items, rows.Err()
}
