package workbench

import (
	"context"
	"fmt"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/query"
)

const defaultNotesLimit = 50

// NotesService maps the note CRUD endpoints. Notes are append-only from the
// caller's perspective; editing is a simple body replace.
type NotesService struct {
	c *Client
}

// Latest returns the most recent note for a symbol, or nil when none exists.
func (n *NotesService) Latest(ctx context.Context, symbol string) (*models.Note, error) {
	params := httpx.NewParams().Str("symbol", symbol).Int("latest", 1)

	key := query.NewKey("notes", params.Values())
	notes, err := query.Fetch(ctx, n.c.cache, key, notesTTL, func(ctx context.Context) ([]models.Note, error) {
		var out []models.Note
		if err := n.c.http.Get(ctx, "/api/notes", params, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return &notes[0], nil
}

// List returns a page of notes for a symbol.
func (n *NotesService) List(ctx context.Context, symbol string, limit, offset int) (models.NotePage, error) {
	if limit <= 0 {
		limit = defaultNotesLimit
	}
	// Offset is sent even when zero so the first page is requested explicitly.
	params := httpx.NewParams().Str("symbol", symbol).Int("limit", limit).OptInt("offset", &offset)

	key := query.NewKey("notes", params.Values())
	return query.Fetch(ctx, n.c.cache, key, notesTTL, func(ctx context.Context) (models.NotePage, error) {
		var out models.NotePage
		err := n.c.http.Get(ctx, "/api/notes", params, &out)
		return out, err
	})
}

// Create adds a new markdown note, optionally attached to a symbol.
func (n *NotesService) Create(ctx context.Context, symbol, bodyMD string) (models.Note, error) {
	body := map[string]string{"symbol": symbol, "body": bodyMD}
	var out models.Note
	if err := n.c.http.Post(ctx, "/api/notes", body, &out); err != nil {
		return models.Note{}, err
	}
	n.c.cache.Invalidate("notes")
	return out, nil
}

// Update replaces a note's markdown body.
func (n *NotesService) Update(ctx context.Context, id, bodyMD string) (models.Note, error) {
	body := map[string]string{"body": bodyMD}
	var out models.Note
	if err := n.c.http.Put(ctx, fmt.Sprintf("/api/notes/%s", id), body, &out); err != nil {
		return models.Note{}, err
	}
	n.c.cache.Invalidate("notes")
	return out, nil
}

// Delete removes a note.
func (n *NotesService) Delete(ctx context.Context, id string) error {
	if err := n.c.http.Delete(ctx, fmt.Sprintf("/api/notes/%s", id), nil); err != nil {
		return err
	}
	n.c.cache.Invalidate("notes")
	return nil
}
