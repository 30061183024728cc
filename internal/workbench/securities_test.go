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

func TestSearchParamsSerialization(t *testing.T) {
	var gotQueries []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)
		w.Write([]byte("[]"))
	}))
	ctx := context.Background()

	_, err := c.Securities.Search(ctx, models.SearchParams{Search: "apple", Limit: 25})
	require.NoError(t, err)

	_, err = c.Securities.Search(ctx, models.SearchParams{Sector: "Energy", Shuffle: true})
	require.NoError(t, err)

	require.Len(t, gotQueries, 2)
	assert.Equal(t, "limit=25&search=apple", gotQueries[0])
	// Shuffle appears only when requested, never as shuffle=false.
	assert.Equal(t, "sector=Energy&shuffle=true", gotQueries[1])
}

func TestChartDefaults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/securities/AAPL/chart", r.URL.Path)
		assert.Equal(t, "5y", r.URL.Query().Get("range"))
		assert.Equal(t, "1w", r.URL.Query().Get("interval"))
		json.NewEncoder(w).Encode(models.ChartData{
			OHLC: models.OHLCSeries{T: []int64{1700000000}, C: []float64{182.5}},
		})
	}))

	chart, err := c.Securities.Chart(context.Background(), "AAPL", "", "")
	require.NoError(t, err)
	require.Len(t, chart.OHLC.T, 1)
	assert.Equal(t, 182.5, chart.OHLC.C[0])
}

func TestFundamentalsRequestsFixedMetricSet(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/securities/AAPL/fundamentals", r.URL.Path)
		assert.Equal(t,
			"pb,ps,ptbv,pe,shy,fcf_yield,rev_cagr_5y,fcf_cagr_5y,rev_yoy,cor_yoy",
			r.URL.Query().Get("metrics"))
		json.NewEncoder(w).Encode(models.FundamentalsData{
			Series: map[string]models.MetricSeries{
				"pe": {T: []int64{1700000000}, V: []float64{28.4}},
			},
		})
	}))

	data, err := c.Securities.Fundamentals(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Contains(t, data.Series, "pe")
}

func TestExcludeSecurity(t *testing.T) {
	var gotBody map[string]string
	listCalls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/securities":
			listCalls++
			w.Write([]byte("[]"))
		case "/api/securities/XOM/exclude":
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	ctx := context.Background()

	// Prime the listing cache, then exclude; the next listing must refetch.
	_, err := c.Securities.Search(ctx, models.SearchParams{})
	require.NoError(t, err)
	require.NoError(t, c.Securities.Exclude(ctx, "XOM", "Fossil fuels: coal revenue"))
	_, err = c.Securities.Search(ctx, models.SearchParams{})
	require.NoError(t, err)

	assert.Equal(t, "Fossil fuels: coal revenue", gotBody["reason"])
	assert.Equal(t, 2, listCalls)
}

func TestExcludeSecurityRequiresReason(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the wire")
	}))

	err := c.Securities.Exclude(context.Background(), "XOM", "")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestIncludeSecurity(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Write([]byte("{}"))
	}))

	require.NoError(t, c.Securities.Include(context.Background(), "XOM"))
	assert.Equal(t, "POST /api/securities/XOM/include", gotPath)
}

func TestTickHistoryPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/securities/AAPL/tick/history", r.URL.Path)
		json.NewEncoder(w).Encode(models.TickHistory{T: []int64{1700000000}, V: []float64{60}})
	}))

	history, err := c.Securities.TickHistory(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, history.T, 1)
	assert.Equal(t, float64(60), history.V[0])
}
