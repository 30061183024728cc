package workbench

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/query"
)

// newTestClient wires a workbench client against an httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := httpx.DefaultConfig(server.URL)
	cfg.WriteToken = "test-token"
	cfg.RateLimit = 1000
	hc, err := httpx.New(cfg, nil)
	require.NoError(t, err)

	return NewClient(hc, query.NewCache(time.Minute, 128, nil), nil)
}
