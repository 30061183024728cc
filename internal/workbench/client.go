// Package workbench provides typed API clients for the investment research
// workbench backend: securities, tick scores, notes, exclusions and the
// exclusions dashboard. Each service is a thin mapping from method and
// parameters to a URL and verb; caching and de-duplication live in the query
// layer, business logic lives server-side.
package workbench

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/query"
)

// Cache lifetimes per resource, matching how often the data meaningfully
// changes.
const (
	securitiesTTL = 30 * time.Second
	exclusionsTTL = 30 * time.Second
	notesTTL      = 30 * time.Second
	holdingsTTL   = 30 * time.Second
	categoriesTTL = 60 * time.Second
	dashboardTTL  = 60 * time.Second
	portfoliosTTL = 60 * time.Second
)

// Client bundles the typed services over one HTTP wrapper and query cache.
type Client struct {
	http   *httpx.Client
	cache  *query.Cache
	logger *logrus.Logger

	Securities *SecuritiesService
	Tick       *TickService
	Notes      *NotesService
	Exclusions *ExclusionsService
	Portfolios *PortfoliosService
	Dashboard  *DashboardService
}

// NewClient creates a workbench API client.
func NewClient(http *httpx.Client, cache *query.Cache, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	c := &Client{
		http:   http,
		cache:  cache,
		logger: logger,
	}
	c.Securities = newSecuritiesService(c)
	c.Tick = &TickService{c: c}
	c.Notes = &NotesService{c: c}
	c.Exclusions = newExclusionsService(c)
	c.Portfolios = newPortfoliosService(c)
	c.Dashboard = &DashboardService{c: c}
	return c
}
