package models

import (
	"github.com/shopspring/decimal"
)

// Security is a row from the security universe search.
type Security struct {
	Symbol     string           `json:"symbol"`
	Name       string           `json:"name"`
	Sector     string           `json:"sector,omitempty"`
	Category   string           `json:"category,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	MarketCap  *decimal.Decimal `json:"market_cap,omitempty"`
	TickScore  *int             `json:"tick_score,omitempty"`
	LastTickAt string           `json:"last_tick_at,omitempty"`
	IsExcluded bool             `json:"is_excluded,omitempty"`
}

// SecurityDetail extends Security with fields only present on the detail endpoint.
type SecurityDetail struct {
	Security
	Country  string `json:"country,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// TickScore is the manual analyst conviction score for a security.
// Score is nil when no score has been assigned yet.
type TickScore struct {
	Score      *int    `json:"score"`
	UpdatedAt  *string `json:"updated_at"`
	IsExcluded bool    `json:"is_excluded,omitempty"`
}

// TickScoreMin and TickScoreMax bound the manual score range.
const (
	TickScoreMin = -100
	TickScoreMax = 100
)

// ChartData holds OHLC candle series plus optional overlays.
type ChartData struct {
	OHLC   OHLCSeries `json:"ohlc"`
	SMA200 []float64  `json:"sma200,omitempty"`
	Volume []float64  `json:"volume,omitempty"`
}

// OHLCSeries is a column-oriented candle series keyed by epoch timestamps.
type OHLCSeries struct {
	T []int64   `json:"t"`
	O []float64 `json:"o"`
	H []float64 `json:"h"`
	L []float64 `json:"l"`
	C []float64 `json:"c"`
}

// FundamentalsData maps metric name to its time series.
type FundamentalsData struct {
	Series map[string]MetricSeries `json:"series"`
}

// MetricSeries is a single fundamentals metric over time.
type MetricSeries struct {
	T []int64   `json:"t"`
	V []float64 `json:"v"`
}

// TickHistory is the history of manual tick scores for a security.
type TickHistory struct {
	T []int64   `json:"t"`
	V []float64 `json:"v"`
}

// SearchParams filters a security universe search.
// Zero-valued fields are omitted from the request.
type SearchParams struct {
	Search       string
	Sector       string
	Limit        int
	Shuffle      bool
	ReviewBefore string
}
