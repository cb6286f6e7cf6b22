package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/yumyai/panres/logger"
	"github.com/yumyai/panres/pkg/ontology"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// OntoDB is the sqlite store the browser API reads from.
type OntoDB struct {
	ontoSQL *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS classes (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		has_sub_classes INTEGER NOT NULL DEFAULT 0,
		has_instances INTEGER NOT NULL DEFAULT 0,
		is_top INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS class_parents (
		child_id TEXT NOT NULL,
		parent_id TEXT NOT NULL,
		PRIMARY KEY (child_id, parent_id)
	);
	CREATE INDEX IF NOT EXISTS idx_class_parents_parent ON class_parents(parent_id);

	CREATE TABLE IF NOT EXISTS individuals (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS individual_types (
		individual_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (individual_id, class_id)
	);
	CREATE INDEX IF NOT EXISTS idx_individual_types_class ON individual_types(class_id);

	CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL
	);

	-- One row per asserted value; position keeps the source order.
	CREATE TABLE IF NOT EXISTS assertions (
		subject_id TEXT NOT NULL,
		property_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		value_type TEXT NOT NULL CHECK(value_type IN ('uri', 'literal')),
		value TEXT NOT NULL,
		datatype TEXT,
		PRIMARY KEY (subject_id, property_id, position)
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS search_index USING fts5(
		id UNINDEXED,
		label,
		local_name,
		kind UNINDEXED,
		type_label UNINDEXED
	);
`

// Open opens (or creates) the store at path. Use ":memory:" for tests.
func Open(path string) (*OntoDB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// sqlite has a single writer; one connection also keeps :memory: stable
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &OntoDB{ontoSQL: sqlDB}, nil
}

// SQL exposes the connection for the query functions in pkg/model.
func (o *OntoDB) SQL() *sql.DB {
	return o.ontoSQL
}

func (o *OntoDB) Close() error {
	return o.ontoSQL.Close()
}

type Stats struct {
	Classes     int `json:"classes"`
	Individuals int `json:"individuals"`
	Properties  int `json:"properties"`
}

func (o *OntoDB) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	row := o.ontoSQL.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM individuals),
			(SELECT COUNT(*) FROM properties)`)
	if err := row.Scan(&s.Classes, &s.Individuals, &s.Properties); err != nil {
		return Stats{}, fmt.Errorf("counting rows: %w", err)
	}
	return s, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Import replaces the store contents with the cache in a single transaction.
func (o *OntoDB) Import(ctx context.Context, cache *ontology.Cache) (Stats, error) {
	tx, err := o.ontoSQL.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"classes", "class_parents", "individuals", "individual_types", "properties", "assertions", "search_index"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return Stats{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := importClasses(ctx, tx, cache); err != nil {
		return Stats{}, err
	}
	if err := importProperties(ctx, tx, cache); err != nil {
		return Stats{}, err
	}
	if err := importIndividuals(ctx, tx, cache); err != nil {
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit import: %w", err)
	}

	stats, err := o.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	logger.Info("Ontology imported",
		zap.Int("classes", stats.Classes),
		zap.Int("individuals", stats.Individuals),
		zap.Int("properties", stats.Properties),
	)
	return stats, nil
}

func importClasses(ctx context.Context, tx *sql.Tx, cache *ontology.Cache) error {
	top := make(map[string]bool, len(cache.TopClasses))
	for _, id := range cache.TopClasses {
		top[id] = true
	}

	classStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classes (id, label, description, has_sub_classes, has_instances, is_top)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing class insert: %w", err)
	}
	defer classStmt.Close()

	parentStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO class_parents (child_id, parent_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing class parent insert: %w", err)
	}
	defer parentStmt.Close()

	ftsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO search_index (id, label, local_name, kind, type_label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for id, cls := range cache.ClassDetails {
		hasSub := cls.HasSubClasses || len(cache.SubClassMap[id]) > 0
		hasInst := cls.HasInstances || len(cache.ClassInstanceMap[id]) > 0
		if _, err := classStmt.ExecContext(ctx, id, cls.Label, cls.Description,
			boolInt(hasSub), boolInt(hasInst), boolInt(top[id])); err != nil {
			return fmt.Errorf("inserting class %s: %w", id, err)
		}
		for _, parent := range cls.SuperClasses {
			if _, err := parentStmt.ExecContext(ctx, id, parent); err != nil {
				return fmt.Errorf("inserting parent of %s: %w", id, err)
			}
		}
		if _, err := ftsStmt.ExecContext(ctx, id, cls.Label, ontology.LocalName(id), ontology.KindClass, "Class"); err != nil {
			return fmt.Errorf("indexing class %s: %w", id, err)
		}
	}
	return nil
}

func importProperties(ctx context.Context, tx *sql.Tx, cache *ontology.Cache) error {
	propStmt, err := tx.PrepareContext(ctx, `INSERT INTO properties (id, label) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing property insert: %w", err)
	}
	defer propStmt.Close()

	ftsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO search_index (id, label, local_name, kind, type_label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for id, entry := range cache.URIRegistry {
		if entry.Type != ontology.KindProperty {
			continue
		}
		label := entry.Label
		if label == "" {
			label = ontology.LocalName(id)
		}
		if _, err := propStmt.ExecContext(ctx, id, label); err != nil {
			return fmt.Errorf("inserting property %s: %w", id, err)
		}
		if _, err := ftsStmt.ExecContext(ctx, id, label, ontology.LocalName(id), ontology.KindProperty, "Property"); err != nil {
			return fmt.Errorf("indexing property %s: %w", id, err)
		}
	}
	return nil
}

func importIndividuals(ctx context.Context, tx *sql.Tx, cache *ontology.Cache) error {
	indStmt, err := tx.PrepareContext(ctx, `INSERT INTO individuals (id, label, description) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing individual insert: %w", err)
	}
	defer indStmt.Close()

	typeStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO individual_types (individual_id, class_id, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing individual type insert: %w", err)
	}
	defer typeStmt.Close()

	assertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assertions (subject_id, property_id, position, value_type, value, datatype)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing assertion insert: %w", err)
	}
	defer assertStmt.Close()

	ftsStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO search_index (id, label, local_name, kind, type_label) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for id, ind := range cache.IndividualDetails {
		if _, err := indStmt.ExecContext(ctx, id, ind.Label, ind.Description); err != nil {
			return fmt.Errorf("inserting individual %s: %w", id, err)
		}

		for pos, typ := range ind.Types {
			if _, err := typeStmt.ExecContext(ctx, id, typ, pos); err != nil {
				return fmt.Errorf("inserting type of %s: %w", id, err)
			}
		}

		props := make([]string, 0, len(ind.Properties))
		for p := range ind.Properties {
			props = append(props, p)
		}
		sort.Strings(props)
		for _, p := range props {
			for pos, v := range ind.Properties[p] {
				var datatype sql.NullString
				if v.Datatype != nil {
					datatype = sql.NullString{String: *v.Datatype, Valid: true}
				}
				if _, err := assertStmt.ExecContext(ctx, id, p, pos, v.Type, v.Value, datatype); err != nil {
					return fmt.Errorf("inserting assertion %s %s: %w", id, p, err)
				}
			}
		}

		if _, err := ftsStmt.ExecContext(ctx, id, ind.Label, ontology.LocalName(id), ontology.KindIndividual, typeLabel(cache, ind)); err != nil {
			return fmt.Errorf("indexing individual %s: %w", id, err)
		}
	}
	return nil
}

// typeLabel is what the search box shows next to an individual.
func typeLabel(cache *ontology.Cache, ind *ontology.IndividualDetail) string {
	for _, typ := range ind.Types {
		if cls, ok := cache.ClassDetails[typ]; ok {
			return cls.Label
		}
		return ontology.LocalName(typ)
	}
	return "Individual"
}
