package workbench

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/query"
)

// fundamentalsMetrics is the fixed metric set requested for the fundamentals
// panel.
var fundamentalsMetrics = strings.Join([]string{
	"pb", "ps", "ptbv", "pe", "shy",
	"fcf_yield", "rev_cagr_5y", "fcf_cagr_5y",
	"rev_yoy", "cor_yoy",
}, ",")

// SecuritiesService maps the security universe endpoints. Per-security detail
// fetches (chart, fundamentals, tick history) run in supersede scopes: when
// the selected symbol changes, a still-in-flight fetch for the previous
// symbol is cancelled and its late response discarded.
type SecuritiesService struct {
	c *Client

	chartScope        *query.Scope
	fundamentalsScope *query.Scope
	tickHistoryScope  *query.Scope
}

func newSecuritiesService(c *Client) *SecuritiesService {
	return &SecuritiesService{
		c:                 c,
		chartScope:        c.cache.NewScope(),
		fundamentalsScope: c.cache.NewScope(),
		tickHistoryScope:  c.cache.NewScope(),
	}
}

// Search queries the security universe.
func (s *SecuritiesService) Search(ctx context.Context, p models.SearchParams) ([]models.Security, error) {
	params := httpx.NewParams().
		Str("search", p.Search).
		Str("sector", p.Sector).
		Int("limit", p.Limit).
		Str("review_before", p.ReviewBefore)
	if p.Shuffle {
		params = params.Bool("shuffle", true)
	}

	key := query.NewKey("securities", params.Values())
	return query.Fetch(ctx, s.c.cache, key, securitiesTTL, func(ctx context.Context) ([]models.Security, error) {
		var out []models.Security
		if err := s.c.http.Get(ctx, "/api/securities", params, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Get fetches the detail record for one security.
func (s *SecuritiesService) Get(ctx context.Context, symbol string) (models.SecurityDetail, error) {
	params := httpx.NewParams().Str("symbol", symbol)
	key := query.NewKey("security", params.Values())
	return query.Fetch(ctx, s.c.cache, key, securitiesTTL, func(ctx context.Context) (models.SecurityDetail, error) {
		var out models.SecurityDetail
		err := s.c.http.Get(ctx, fmt.Sprintf("/api/securities/%s", symbol), httpx.NewParams(), &out)
		return out, err
	})
}

// InvestableTicks lists tick-scored securities in the investable universe.
func (s *SecuritiesService) InvestableTicks(ctx context.Context) ([]models.Security, error) {
	key := query.NewKey("securities/tick/investable", nil)
	return query.Fetch(ctx, s.c.cache, key, securitiesTTL, func(ctx context.Context) ([]models.Security, error) {
		var out []models.Security
		if err := s.c.http.Get(ctx, "/api/securities/tick/investable", httpx.NewParams(), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Chart fetches price history for charting. Range and interval default to
// five years of weekly candles.
func (s *SecuritiesService) Chart(ctx context.Context, symbol, chartRange, interval string) (models.ChartData, error) {
	if chartRange == "" {
		chartRange = "5y"
	}
	if interval == "" {
		interval = "1w"
	}
	params := httpx.NewParams().Str("range", chartRange).Str("interval", interval)

	key := query.NewKey("chart/"+symbol, params.Values())
	return query.FetchScoped(ctx, s.chartScope, key, securitiesTTL, func(ctx context.Context) (models.ChartData, error) {
		var out models.ChartData
		err := s.c.http.Get(ctx, fmt.Sprintf("/api/securities/%s/chart", symbol), params, &out)
		return out, err
	})
}

// Fundamentals fetches the fundamentals series for a security.
func (s *SecuritiesService) Fundamentals(ctx context.Context, symbol string) (models.FundamentalsData, error) {
	params := httpx.NewParams().Str("metrics", fundamentalsMetrics)

	key := query.NewKey("fundamentals/"+symbol, params.Values())
	return query.FetchScoped(ctx, s.fundamentalsScope, key, securitiesTTL, func(ctx context.Context) (models.FundamentalsData, error) {
		var out models.FundamentalsData
		err := s.c.http.Get(ctx, fmt.Sprintf("/api/securities/%s/fundamentals", symbol), params, &out)
		return out, err
	})
}

// Exclude removes a security from the investable universe with a one-step
// toggle, bypassing the category picker of the full exclusions workflow.
func (s *SecuritiesService) Exclude(ctx context.Context, symbol, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %s", ErrReasonRequired, symbol)
	}

	body := map[string]string{"reason": reason}
	if err := s.c.http.Post(ctx, fmt.Sprintf("/api/securities/%s/exclude", symbol), body, nil); err != nil {
		return err
	}
	s.invalidateExclusionState()
	return nil
}

// Include restores an excluded security to the investable universe.
func (s *SecuritiesService) Include(ctx context.Context, symbol string) error {
	if err := s.c.http.Post(ctx, fmt.Sprintf("/api/securities/%s/include", symbol), nil, nil); err != nil {
		return err
	}
	s.invalidateExclusionState()
	return nil
}

func (s *SecuritiesService) invalidateExclusionState() {
	s.c.cache.Invalidate("securities", "securities/tick/investable", "exclusions")
}

// TickHistory fetches the manual score history for a security.
func (s *SecuritiesService) TickHistory(ctx context.Context, symbol string) (models.TickHistory, error) {
	key := query.NewKey("tick-history/"+symbol, nil)
	return query.FetchScoped(ctx, s.tickHistoryScope, key, securitiesTTL, func(ctx context.Context) (models.TickHistory, error) {
		var out models.TickHistory
		err := s.c.http.Get(ctx, fmt.Sprintf("/api/securities/%s/tick/history", symbol), httpx.NewParams(), &out)
		return out, err
	})
}
