package workbench

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/query"
)

// PortfoliosService maps the portfolio endpoints: the portfolio list,
// per-portfolio holdings, trade entry and per-security strategy assignment.
type PortfoliosService struct {
	c        *Client
	validate *validator.Validate
}

func newPortfoliosService(c *Client) *PortfoliosService {
	return &PortfoliosService{
		c:        c,
		validate: validator.New(),
	}
}

// List returns all portfolios.
func (p *PortfoliosService) List(ctx context.Context) ([]models.Portfolio, error) {
	key := query.NewKey("portfolios", nil)
	return query.Fetch(ctx, p.c.cache, key, portfoliosTTL, func(ctx context.Context) ([]models.Portfolio, error) {
		var out []models.Portfolio
		if err := p.c.http.Get(ctx, "/api/portfolios", httpx.NewParams(), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// Create adds a new portfolio. The name is validated client-side; min_tick,
// when set, must be a valid tick score.
func (p *PortfoliosService) Create(ctx context.Context, req models.CreatePortfolioRequest) (models.Portfolio, error) {
	if err := p.validate.Struct(req); err != nil {
		return models.Portfolio{}, fmt.Errorf("%w: %v", ErrInvalidPortfolio, err)
	}

	var out models.Portfolio
	if err := p.c.http.Post(ctx, "/api/portfolios", req, &out); err != nil {
		return models.Portfolio{}, err
	}
	p.c.cache.Invalidate("portfolios")
	return out, nil
}

// Holdings returns the positions of one portfolio.
func (p *PortfoliosService) Holdings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	key := query.NewKey("portfolio-holdings/"+portfolioID, nil)
	return query.Fetch(ctx, p.c.cache, key, holdingsTTL, func(ctx context.Context) ([]models.Holding, error) {
		var out []models.Holding
		if err := p.c.http.Get(ctx, fmt.Sprintf("/api/portfolios/%s/holdings", portfolioID), httpx.NewParams(), &out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

// AddTrade records a trade against a portfolio. A successful write
// invalidates the portfolio's holdings so the next read refetches.
func (p *PortfoliosService) AddTrade(ctx context.Context, portfolioID string, trade models.Trade) error {
	if err := p.validate.Struct(trade); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}

	if err := p.c.http.Post(ctx, fmt.Sprintf("/api/portfolios/%s/trades", portfolioID), trade, nil); err != nil {
		return err
	}
	p.c.cache.Invalidate("portfolio-holdings/" + portfolioID)
	return nil
}

// Strategies returns the strategy assignments for a security.
func (p *PortfoliosService) Strategies(ctx context.Context, symbol string) (models.StrategyAssignment, error) {
	key := query.NewKey("strategies/"+symbol, nil)
	return query.Fetch(ctx, p.c.cache, key, holdingsTTL, func(ctx context.Context) (models.StrategyAssignment, error) {
		var out models.StrategyAssignment
		err := p.c.http.Get(ctx, fmt.Sprintf("/api/portfolios/%s/strategies", symbol), httpx.NewParams(), &out)
		return out, err
	})
}

// UpdateStrategies replaces the strategy assignments for a security.
func (p *PortfoliosService) UpdateStrategies(ctx context.Context, symbol string, strategies []string) (models.StrategyAssignment, error) {
	body := models.StrategyAssignment{Strategies: strategies}
	var out models.StrategyAssignment
	if err := p.c.http.Put(ctx, fmt.Sprintf("/api/portfolios/%s/strategies", symbol), body, &out); err != nil {
		return models.StrategyAssignment{}, err
	}
	p.c.cache.Invalidate("strategies/" + symbol)
	return out, nil
}
