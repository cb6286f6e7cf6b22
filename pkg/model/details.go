package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetDetails resolves id as a class, then an individual, then a property.
// The registry update covers the node and every id it references.
func GetDetails(ctx context.Context, db *sql.DB, id string) (*DetailsResponse, error) {
	cls, err := classDetails(ctx, db, id)
	if err == nil {
		refs := append([]string{cls.ID}, cls.SuperClasses...)
		refs = append(refs, cls.SubClasses...)
		refs = append(refs, cls.Instances...)
		return detailsWithRegistry(ctx, db, KindClass, cls, refs)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	ind, err := individualDetails(ctx, db, id)
	if err == nil {
		refs := append([]string{ind.ID}, ind.Types...)
		for prop, values := range ind.Properties {
			refs = append(refs, prop)
			for _, v := range values {
				if v.Type == "uri" {
					refs = append(refs, v.Value)
				}
				if v.Datatype != "" {
					refs = append(refs, v.Datatype)
				}
			}
		}
		return detailsWithRegistry(ctx, db, KindIndividual, ind, refs)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var prop BasicDetails
	err = db.QueryRowContext(ctx, `SELECT id, label FROM properties WHERE id = ?`, id).Scan(&prop.ID, &prop.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up property %s: %w", id, err)
	}
	return detailsWithRegistry(ctx, db, KindProperty, &prop, []string{prop.ID})
}

func detailsWithRegistry(ctx context.Context, db *sql.DB, kind string, details any, refs []string) (*DetailsResponse, error) {
	update, err := registryFor(ctx, db, refs)
	if err != nil {
		return nil, err
	}
	return NewDetailsResponse(kind, details, update)
}

func classDetails(ctx context.Context, db *sql.DB, id string) (*ClassDetails, error) {
	c := &ClassDetails{ID: id}
	err := db.QueryRowContext(ctx, `SELECT label, description FROM classes WHERE id = ?`, id).
		Scan(&c.Label, &c.Description)
	if err != nil {
		return nil, err
	}

	if c.SuperClasses, err = queryIDs(ctx, db,
		`SELECT parent_id FROM class_parents WHERE child_id = ? ORDER BY parent_id`, id); err != nil {
		return nil, err
	}
	if c.SubClasses, err = queryIDs(ctx, db,
		`SELECT child_id FROM class_parents WHERE parent_id = ? ORDER BY child_id`, id); err != nil {
		return nil, err
	}
	if c.Instances, err = queryIDs(ctx, db,
		`SELECT individual_id FROM individual_types WHERE class_id = ? ORDER BY individual_id`, id); err != nil {
		return nil, err
	}
	return c, nil
}

func individualDetails(ctx context.Context, db *sql.DB, id string) (*IndividualDetails, error) {
	ind := &IndividualDetails{ID: id, Properties: make(map[string][]PropertyValue)}
	err := db.QueryRowContext(ctx, `SELECT label, description FROM individuals WHERE id = ?`, id).
		Scan(&ind.Label, &ind.Description)
	if err != nil {
		return nil, err
	}

	if ind.Types, err = queryIDs(ctx, db,
		`SELECT class_id FROM individual_types WHERE individual_id = ? ORDER BY position`, id); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT property_id, value_type, value, datatype
		FROM assertions
		WHERE subject_id = ?
		ORDER BY property_id, position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying assertions of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var prop string
		var v PropertyValue
		var datatype sql.NullString
		if err := rows.Scan(&prop, &v.Type, &v.Value, &datatype); err != nil {
			return nil, fmt.Errorf("scanning assertion: %w", err)
		}
		v.Datatype = datatype.String
		ind.Properties[prop] = append(ind.Properties[prop], v)
	}
	return ind, rows.Err()
}

func queryIDs(ctx context.Context, db *sql.DB, query string, arg string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying related ids of %s: %w", arg, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// registryFor looks up label and kind for each id the store knows. Unknown
// ids (external links, datatypes) are left out.
func registryFor(ctx context.Context, db *sql.DB, ids []string) (map[string]RegistryInfo, error) {
	stmt, err := db.PrepareContext(ctx, `
		SELECT label, 'class' FROM classes WHERE id = ?1
		UNION ALL SELECT label, 'individual' FROM individuals WHERE id = ?1
		UNION ALL SELECT label, 'property' FROM properties WHERE id = ?1
		LIMIT 1`)
	if err != nil {
		return nil, fmt.Errorf("preparing registry lookup: %w", err)
	}
	defer stmt.Close()

	out := make(map[string]RegistryInfo, len(ids))
	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		var info RegistryInfo
		err := stmt.QueryRowContext(ctx, id).Scan(&info.Label, &info.Type)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("registry lookup %s: %w", id, err)
		}
		out[id] = info
	}
	return out, nil
}
