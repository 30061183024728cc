package workbench

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethicic/workbench/internal/models"
)

func TestPortfoliosListCached(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/portfolios", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Portfolio{{ID: "p1", Name: "Growth"}})
	}))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		portfolios, err := c.Portfolios.List(ctx)
		require.NoError(t, err)
		require.Len(t, portfolios, 1)
		assert.Equal(t, "Growth", portfolios[0].Name)
	}
	assert.Equal(t, 1, calls, "portfolio list should be served from cache")
}

func TestCreatePortfolioValidation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the wire")
	}))
	ctx := context.Background()

	_, err := c.Portfolios.Create(ctx, models.CreatePortfolioRequest{})
	assert.ErrorIs(t, err, ErrInvalidPortfolio)

	// min_tick must be a valid tick score when provided.
	bad := 250
	_, err = c.Portfolios.Create(ctx, models.CreatePortfolioRequest{Name: "Income", MinTick: &bad})
	assert.ErrorIs(t, err, ErrInvalidPortfolio)
}

func TestCreatePortfolioInvalidatesList(t *testing.T) {
	listCalls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listCalls++
			w.Write([]byte("[]"))
		case http.MethodPost:
			var req models.CreatePortfolioRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Income", req.Name)
			require.NotNil(t, req.MinTick)
			assert.Equal(t, 70, *req.MinTick)
			json.NewEncoder(w).Encode(models.Portfolio{ID: "p2", Name: req.Name, MinTick: req.MinTick})
		}
	}))
	ctx := context.Background()

	_, err := c.Portfolios.List(ctx)
	require.NoError(t, err)

	minTick := 70
	created, err := c.Portfolios.Create(ctx, models.CreatePortfolioRequest{Name: "Income", MinTick: &minTick})
	require.NoError(t, err)
	assert.Equal(t, "p2", created.ID)

	_, err = c.Portfolios.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "create must invalidate the cached list")
}

func TestHoldingsPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/portfolios/p1/holdings", r.URL.Path)
		qty := 100.0
		json.NewEncoder(w).Encode([]models.Holding{
			{Symbol: "AAPL", Weight: 0.125, Qty: &qty},
		})
	}))

	holdings, err := c.Portfolios.Holdings(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "AAPL", holdings[0].Symbol)
	assert.Equal(t, 0.125, holdings[0].Weight)
}

func TestAddTradeInvalidatesHoldings(t *testing.T) {
	var gotTrade models.Trade
	holdingsCalls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/portfolios/p1/holdings":
			holdingsCalls++
			w.Write([]byte("[]"))
		case "/api/portfolios/p1/trades":
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotTrade))
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	ctx := context.Background()

	_, err := c.Portfolios.Holdings(ctx, "p1")
	require.NoError(t, err)

	trade := models.Trade{Date: "2026-08-31", Symbol: "AAPL", Qty: 100, Price: 182.5}
	require.NoError(t, c.Portfolios.AddTrade(ctx, "p1", trade))

	_, err = c.Portfolios.Holdings(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", gotTrade.Symbol)
	assert.Equal(t, 100.0, gotTrade.Qty)
	assert.Equal(t, 2, holdingsCalls, "trade must invalidate the cached holdings")
}

func TestAddTradeRequiresSymbol(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the wire")
	}))

	err := c.Portfolios.AddTrade(context.Background(), "p1", models.Trade{Qty: 100, Price: 50})
	assert.Error(t, err)
}

func TestStrategyAssignmentRoundTrip(t *testing.T) {
	var gotPaths []string
	var gotBody models.StrategyAssignment
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(gotBody)
			return
		}
		json.NewEncoder(w).Encode(models.StrategyAssignment{Strategies: []string{"growth"}})
	}))
	ctx := context.Background()

	assignment, err := c.Portfolios.Strategies(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []string{"growth"}, assignment.Strategies)

	updated, err := c.Portfolios.UpdateStrategies(ctx, "AAPL", []string{"growth", "income"})
	require.NoError(t, err)
	assert.Equal(t, []string{"growth", "income"}, updated.Strategies)
	assert.Equal(t, []string{"growth", "income"}, gotBody.Strategies)

	assert.Equal(t, []string{
		"GET /api/portfolios/AAPL/strategies",
		"PUT /api/portfolios/AAPL/strategies",
	}, gotPaths)
}

func TestUpdateStrategiesInvalidatesAssignment(t *testing.T) {
	getCalls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			getCalls++
		}
		json.NewEncoder(w).Encode(models.StrategyAssignment{Strategies: []string{}})
	}))
	ctx := context.Background()

	_, err := c.Portfolios.Strategies(ctx, "AAPL")
	require.NoError(t, err)
	_, err = c.Portfolios.UpdateStrategies(ctx, "AAPL", []string{"income"})
	require.NoError(t, err)
	_, err = c.Portfolios.Strategies(ctx, "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 2, getCalls, "update must invalidate the cached assignment")
}
