package workbench

import (
	"context"
	"fmt"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
)

// TickService reads and writes manual tick scores. Reads are always fresh:
// the score is an edit target, so a stale cached value could clobber a
// concurrent edit's feedback.
type TickService struct {
	c *Client
}

// Get fetches the current tick score for a symbol.
func (t *TickService) Get(ctx context.Context, symbol string) (models.TickScore, error) {
	var out models.TickScore
	err := t.c.http.Get(ctx, fmt.Sprintf("/api/securities/%s/tick", symbol), httpx.NewParams(), &out)
	return out, err
}

// Update writes a new tick score. The score must be within [-100, 100].
// A successful write invalidates the securities listings so the next read
// refetches instead of patching cached state.
func (t *TickService) Update(ctx context.Context, symbol string, score int) (models.TickScore, error) {
	if score < models.TickScoreMin || score > models.TickScoreMax {
		return models.TickScore{}, fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}

	body := map[string]int{"score": score}
	var out models.TickScore
	if err := t.c.http.Put(ctx, fmt.Sprintf("/api/securities/%s/tick", symbol), body, &out); err != nil {
		return models.TickScore{}, err
	}

	t.c.cache.Invalidate("securities", "securities/tick/investable", "tick-history/"+symbol)
	return out, nil
}
