package workbench

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/query"
)

// ExclusionsService maps the exclusions endpoints: CRUD, the review
// workflow, bulk import, export and categories.
type ExclusionsService struct {
	c        *Client
	validate *validator.Validate
}

func newExclusionsService(c *Client) *ExclusionsService {
	return &ExclusionsService{
		c:        c,
		validate: validator.New(),
	}
}

// List returns exclusions matching the filter.
func (e *ExclusionsService) List(ctx context.Context, filter models.ExclusionFilter) ([]models.Exclusion, error) {
	params := httpx.NewParams().
		Str("symbol", filter.Symbol).
		Str("category", filter.Category).
		OptBool("is_active", filter.IsActive).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset)

	key := query.NewKey("exclusions", params.Values())
	return query.Fetch(ctx, e.c.cache, key, exclusionsTTL, func(ctx context.Context) ([]models.Exclusion, error) {
		var out []models.Exclusion
		if err := e.c.http.Get(ctx, "/api/exclusions", params, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Create adds a single exclusion. Symbol and reason are validated
// client-side so obviously broken input never reaches the wire.
func (e *ExclusionsService) Create(ctx context.Context, req models.CreateExclusionRequest) (models.Exclusion, error) {
	if err := e.validate.Struct(req); err != nil {
		return models.Exclusion{}, ErrSymbolAndReasonRequired
	}

	var out models.Exclusion
	if err := e.c.http.Post(ctx, "/api/exclusions", req, &out); err != nil {
		return models.Exclusion{}, err
	}
	e.invalidate()
	return out, nil
}

// Delete removes an exclusion.
func (e *ExclusionsService) Delete(ctx context.Context, id int) error {
	if err := e.c.http.Delete(ctx, fmt.Sprintf("/api/exclusions/%d", id), nil); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// Review approves or rejects an unreviewed exclusion.
func (e *ExclusionsService) Review(ctx context.Context, id int, decision models.ReviewDecision, notes string) (models.Exclusion, error) {
	if decision != models.ReviewApprove && decision != models.ReviewReject {
		return models.Exclusion{}, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	body := map[string]string{"decision": string(decision)}
	if notes != "" {
		body["notes"] = notes
	}
	var out models.Exclusion
	if err := e.c.http.Post(ctx, fmt.Sprintf("/api/exclusions/%d/review", id), body, &out); err != nil {
		return models.Exclusion{}, err
	}
	e.invalidate()
	return out, nil
}

// Categories returns the static category reference data.
func (e *ExclusionsService) Categories(ctx context.Context) ([]models.ExclusionCategory, error) {
	key := query.NewKey("exclusion-categories", nil)
	return query.Fetch(ctx, e.c.cache, key, categoriesTTL, func(ctx context.Context) ([]models.ExclusionCategory, error) {
		var out []models.ExclusionCategory
		if err := e.c.http.Get(ctx, "/api/exclusions/categories", httpx.NewParams(), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// CreateCategory adds a new exclusion category.
func (e *ExclusionsService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (models.ExclusionCategory, error) {
	if err := e.validate.Struct(req); err != nil {
		return models.ExclusionCategory{}, fmt.Errorf("invalid category: %w", err)
	}

	var out models.ExclusionCategory
	if err := e.c.http.Post(ctx, "/api/exclusions/categories", req, &out); err != nil {
		return models.ExclusionCategory{}, err
	}
	e.c.cache.Invalidate("exclusion-categories")
	return out, nil
}

// History returns the audit trail for an exclusion.
func (e *ExclusionsService) History(ctx context.Context, id int) ([]models.ExclusionEvent, error) {
	var out []models.ExclusionEvent
	err := e.c.http.Get(ctx, fmt.Sprintf("/api/exclusions/history/%d", id), httpx.NewParams(), &out)
	return out, err
}

// Export downloads the exclusions list as an opaque CSV or JSON blob.
func (e *ExclusionsService) Export(ctx context.Context, format models.ExportFormat, filter models.ExclusionFilter) ([]byte, error) {
	if format != models.ExportCSV && format != models.ExportJSON {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportFormat, format)
	}

	params := httpx.NewParams().
		Str("format", string(format)).
		Str("symbol", filter.Symbol).
		Str("category", filter.Category).
		OptBool("is_active", filter.IsActive)

	return e.c.http.GetRaw(ctx, "/api/exclusions/export", params)
}

// BulkCreate submits candidate exclusions in one call. Partial success is the
// expected outcome: the result reports how many rows were created and which
// were rejected, rather than failing the whole batch.
func (e *ExclusionsService) BulkCreate(ctx context.Context, rows []models.CreateExclusionRequest) (models.BulkResult, error) {
	if len(rows) == 0 {
		return models.BulkResult{}, ErrNoBulkRows
	}

	body := map[string]interface{}{"exclusions": rows}
	var out models.BulkResult
	if err := e.c.http.Post(ctx, "/api/exclusions/bulk", body, &out); err != nil {
		return models.BulkResult{}, err
	}
	e.invalidate()
	return out, nil
}

func (e *ExclusionsService) invalidate() {
	e.c.cache.Invalidate("exclusions", "securities", "securities/tick/investable")
}
