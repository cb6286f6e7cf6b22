package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id is unknown to the store.
var ErrNotFound = errors.New("not found")

// GetHierarchy returns the root classes and a registry seeded with them and
// every known property.
func GetHierarchy(ctx context.Context, db *sql.DB) (*HierarchyResponse, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, label, has_sub_classes, has_instances
		FROM classes
		WHERE is_top = 1
		ORDER BY label COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("querying top classes: %w", err)
	}
	top, err := scanClassSummaries(rows)
	if err != nil {
		return nil, err
	}

	resp := &HierarchyResponse{
		TopClasses:  top,
		URIRegistry: make(map[string]RegistryInfo, len(top)),
	}
	for _, c := range top {
		resp.URIRegistry[c.ID] = RegistryInfo{Label: c.Label, Type: KindClass}
	}

	props, err := db.QueryContext(ctx, `SELECT id, label FROM properties`)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer props.Close()
	for props.Next() {
		var id, label string
		if err := props.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		resp.URIRegistry[id] = RegistryInfo{Label: label, Type: KindProperty}
	}
	if err := props.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetChildren returns the direct subclasses and instances of a class.
func GetChildren(ctx context.Context, db *sql.DB, classID string) (*ChildrenResponse, error) {
	known, err := classExists(ctx, db, classID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("class %s: %w", classID, ErrNotFound)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.label, c.has_sub_classes, c.has_instances
		FROM class_parents p
		JOIN classes c ON c.id = p.child_id
		WHERE p.parent_id = ?
		ORDER BY c.label COLLATE NOCASE, c.id`, classID)
	if err != nil {
		return nil, fmt.Errorf("querying subclasses of %s: %w", classID, err)
	}
	subs, err := scanClassSummaries(rows)
	if err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, `
		SELECT i.id, i.label
		FROM individual_types t
		JOIN individuals i ON i.id = t.individual_id
		WHERE t.class_id = ?
		ORDER BY i.label COLLATE NOCASE, i.id`, classID)
	if err != nil {
		return nil, fmt.Errorf("querying instances of %s: %w", classID, err)
	}
	defer rows.Close()

	instances := make([]InstanceSummary, 0)
	for rows.Next() {
		var inst InstanceSummary
		if err := rows.Scan(&inst.ID, &inst.Label); err != nil {
			return nil, fmt.Errorf("scanning instance: %w", err)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &ChildrenResponse{SubClasses: subs, Instances: instances}, nil
}

func classExists(ctx context.Context, db *sql.DB, id string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("looking up class %s: %w", id, err)
	}
	return n > 0, nil
}

func scanClassSummaries(rows *sql.Rows) ([]ClassSummary, error) {
	defer rows.Close()

	out := make([]ClassSummary, 0)
	for rows.Next() {
		var c ClassSummary
		if err := rows.Scan(&c.ID, &c.Label, &c.HasSubClasses, &c.HasInstances); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
