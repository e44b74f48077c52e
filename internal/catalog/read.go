package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/latepath/internal/compiler"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("catalog: not found")

// GetLayout retrieves a stored layout by name.
// Returns ErrNotFound if no layout with that name exists.
func (c *Catalog) GetLayout(ctx context.Context, name string) (*compiler.Layout, error) {
	var definition string
	err := c.db.QueryRowContext(ctx, `
		SELECT definition FROM layouts WHERE name = ?
	`, name).Scan(&definition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get layout %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout %q: %w", name, err)
	}

	var layout compiler.Layout
	if err := json.Unmarshal([]byte(definition), &layout); err != nil {
		return nil, fmt.Errorf("get layout %q: unmarshal: %w", name, err)
	}
	return &layout, nil
}

// ListLayouts returns all stored layouts ordered by name.
// Returns an empty slice (not nil) when the catalog holds no layouts.
func (c *Catalog) ListLayouts(ctx context.Context) ([]compiler.Layout, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT definition FROM layouts ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	layouts := []compiler.Layout{}
	for rows.Next() {
		var definition string
		if err := rows.Scan(&definition); err != nil {
			return nil, fmt.Errorf("list layouts: scan: %w", err)
		}
		var layout compiler.Layout
		if err := json.Unmarshal([]byte(definition), &layout); err != nil {
			return nil, fmt.Errorf("list layouts: unmarshal: %w", err)
		}
		layouts = append(layouts, layout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: iterate: %w", err)
	}

	return layouts, nil
}

// ListResolutions returns all resolution records for a layout with
// deterministic ordering: ORDER BY seq ASC, id COLLATE BINARY ASC.
// Returns an empty slice (not nil) when no records exist.
func (c *Catalog) ListResolutions(ctx context.Context, layout string) ([]Resolution, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, session_token, layout, bindings, path, seq
		FROM resolutions
		WHERE layout = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, layout)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	return scanResolutions(rows)
}

// ListSessionResolutions returns all resolution records grouped under a
// session token, in seq order.
func (c *Catalog) ListSessionResolutions(ctx context.Context, sessionToken string) ([]Resolution, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, session_token, layout, bindings, path, seq
		FROM resolutions
		WHERE session_token = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("list session resolutions: %w", err)
	}
	defer rows.Close()

	return scanResolutions(rows)
}

// scanResolutions drains a result set into resolution records.
func scanResolutions(rows *sql.Rows) ([]Resolution, error) {
	resolutions := []Resolution{}
	for rows.Next() {
		var r Resolution
		var bindingsJSON string
		if err := rows.Scan(&r.ID, &r.SessionToken, &r.Layout, &bindingsJSON, &r.Path, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		bindings, err := unmarshalBindings(bindingsJSON)
		if err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		r.Bindings = bindings
		resolutions = append(resolutions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}
	return resolutions, nil
}
