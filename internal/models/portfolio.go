package models

// Portfolio is a named holdings container, optionally gated by a minimum
// tick score.
type Portfolio struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	MinTick *int   `json:"min_tick,omitempty"`
}

// CreatePortfolioRequest creates a new portfolio.
type CreatePortfolioRequest struct {
	Name    string `json:"name" validate:"required"`
	MinTick *int   `json:"min_tick,omitempty" validate:"omitempty,gte=-100,lte=100"`
}

// Holding is one position within a portfolio.
type Holding struct {
	Symbol string   `json:"symbol"`
	Weight float64  `json:"weight"`
	Qty    *float64 `json:"qty,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}

// Trade records an entry into a portfolio.
type Trade struct {
	Date   string  `json:"date"`
	Symbol string  `json:"symbol" validate:"required"`
	Qty    float64 `json:"qty"`
	Price  float64 `json:"price"`
	Note   string  `json:"note,omitempty"`
}

// StrategyAssignment is the set of portfolio strategies a security belongs
// to.
type StrategyAssignment struct {
	Strategies []string `json:"strategies"`
}
