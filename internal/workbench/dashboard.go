package workbench

import (
	"context"
	"fmt"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/query"
)

const dashboardBase = "/api/exclusions/workbench"

// DashboardService maps the read-mostly analytics endpoints backing the
// exclusions dashboard.
type DashboardService struct {
	c *Client
}

// Stats returns headline dataset counts.
func (d *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	return fetchDashboard[models.DashboardStats](ctx, d, "/stats")
}

// RecentLogs returns recent ingestion log lines.
func (d *DashboardService) RecentLogs(ctx context.Context) ([]models.LogEntry, error) {
	return fetchDashboard[[]models.LogEntry](ctx, d, "/recent-logs")
}

// Categories returns per-category aggregates and cross-category overlaps.
func (d *DashboardService) Categories(ctx context.Context) (models.CategoriesReport, error) {
	return fetchDashboard[models.CategoriesReport](ctx, d, "/categories")
}

// SourceMappings returns how upstream sources map onto categories.
func (d *DashboardService) SourceMappings(ctx context.Context) ([]models.SourceMapping, error) {
	return fetchDashboard[[]models.SourceMapping](ctx, d, "/source-mappings")
}

// DataQuality returns duplicate and completeness checks.
func (d *DashboardService) DataQuality(ctx context.Context) (models.DataQualityReport, error) {
	return fetchDashboard[models.DataQualityReport](ctx, d, "/data-quality")
}

// SharadarCoverage reports the match between exclusions and the Sharadar
// ticker universe.
func (d *DashboardService) SharadarCoverage(ctx context.Context) (models.SharadarCoverageReport, error) {
	return fetchDashboard[models.SharadarCoverageReport](ctx, d, "/sharadar-coverage")
}

// IngestionLogs returns recent and failed ingestion runs.
func (d *DashboardService) IngestionLogs(ctx context.Context) (models.IngestionLogsReport, error) {
	return fetchDashboard[models.IngestionLogsReport](ctx, d, "/ingestion-logs")
}

// CategoryGuidance returns the analyst guidance for one category.
func (d *DashboardService) CategoryGuidance(ctx context.Context, category string) (models.CategoryGuidance, error) {
	return fetchDashboard[models.CategoryGuidance](ctx, d, fmt.Sprintf("/categories/%s/guidance", category))
}

// UpdateCategoryGuidance replaces the analyst guidance for one category.
func (d *DashboardService) UpdateCategoryGuidance(ctx context.Context, category string, g models.CategoryGuidance) (models.CategoryGuidance, error) {
	var out models.CategoryGuidance
	if err := d.c.http.Put(ctx, fmt.Sprintf("%s/categories/%s/guidance", dashboardBase, category), g, &out); err != nil {
		return models.CategoryGuidance{}, err
	}
	d.c.cache.Invalidate("workbench/categories", "workbench"+fmt.Sprintf("/categories/%s/guidance", category))
	return out, nil
}

// fetchDashboard runs one cached dashboard read.
func fetchDashboard[T any](ctx context.Context, d *DashboardService, endpoint string) (T, error) {
	key := query.NewKey("workbench"+endpoint, nil)
	return query.Fetch(ctx, d.c.cache, key, dashboardTTL, func(ctx context.Context) (T, error) {
		var out T
		err := d.c.http.Get(ctx, dashboardBase+endpoint, httpx.NewParams(), &out)
		return out, err
	})
}
