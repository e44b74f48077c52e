package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/latepath/internal/compiler"
	"github.com/roach88/latepath/internal/expr"
)

// SaveLayout upserts a layout definition under its name. Saving the same
// name again replaces the stored definition; the saved_seq records the
// logical save order for history queries.
func (c *Catalog) SaveLayout(ctx context.Context, layout *compiler.Layout) error {
	if layout.Name == "" {
		return fmt.Errorf("save layout: name is required")
	}

	definition, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("save layout: marshal: %w", err)
	}

	seq, err := c.NextSeq(ctx)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO layouts (name, definition, saved_seq)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			definition = excluded.definition,
			saved_seq = excluded.saved_seq
	`, layout.Name, string(definition), seq)
	if err != nil {
		return fmt.Errorf("save layout: %w", err)
	}

	return nil
}

// RecordResolution inserts a resolution provenance record.
// The record's ID is content-addressed over (layout, bindings, path, seq);
// duplicate IDs are silently ignored (ON CONFLICT DO NOTHING) so replays
// are idempotent.
func (c *Catalog) RecordResolution(ctx context.Context, sessionToken, layout string, bindings expr.Bindings, path string) (Resolution, error) {
	seq, err := c.NextSeq(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("record resolution: %w", err)
	}

	id, err := ResolutionID(layout, bindings, path, seq)
	if err != nil {
		return Resolution{}, fmt.Errorf("record resolution: %w", err)
	}

	bindingsJSON, err := marshalBindings(bindings)
	if err != nil {
		return Resolution{}, fmt.Errorf("record resolution: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO resolutions (id, session_token, layout, bindings, path, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, sessionToken, layout, bindingsJSON, path, seq)
	if err != nil {
		return Resolution{}, fmt.Errorf("record resolution: %w", err)
	}

	return Resolution{
		ID:           id,
		SessionToken: sessionToken,
		Layout:       layout,
		Bindings:     bindings,
		Path:         path,
		Seq:          seq,
	}, nil
}
