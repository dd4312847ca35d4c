package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// RemoteSearchQuery is an EDGAR full-text search.
type RemoteSearchQuery struct {
	Query    string
	Forms    []string
	DateFrom string
	DateTo   string
}

// RemoteAPI proxies live EDGAR lookups through the backend.
type RemoteAPI struct {
	c *transport.Client

	tickers *infra.Cache[[]models.RemoteTicker]
}

// Submissions fetches a company's submissions straight from EDGAR.
func (a *RemoteAPI) Submissions(ctx context.Context, cik string) (models.RemoteSubmission, error) {
	if err := require("cik", cik); err != nil {
		return models.RemoteSubmission{}, err
	}
	return transport.Get[models.RemoteSubmission](ctx, a.c, "/remote-edgar/submissions/"+transport.Segment(cik))
}

// Tickers returns EDGAR's company ticker list.
func (a *RemoteAPI) Tickers(ctx context.Context) ([]models.RemoteTicker, error) {
	return cached(a.tickers, "all", func() ([]models.RemoteTicker, error) {
		return transport.Get[[]models.RemoteTicker](ctx, a.c, "/remote-edgar/tickers")
	})
}

// Search runs an EDGAR full-text search.
func (a *RemoteAPI) Search(ctx context.Context, q RemoteSearchQuery) (models.RemoteSearchResult, error) {
	if err := require("query", q.Query); err != nil {
		return models.RemoteSearchResult{}, err
	}
	query := transport.NewQuery().
		Add("q", q.Query).
		AddList("forms", q.Forms).
		Add("dateFrom", q.DateFrom).
		Add("dateTo", q.DateTo)
	return transport.Get[models.RemoteSearchResult](ctx, a.c, query.With("/remote-edgar/search"))
}

// Sync copies a company's EDGAR submissions into the backend store.
func (a *RemoteAPI) Sync(ctx context.Context, cik string) (models.Company, error) {
	if err := require("cik", cik); err != nil {
		return models.Company{}, err
	}
	return transport.Post[models.Company](ctx, a.c, "/remote-edgar/sync/"+transport.Segment(cik), nil)
}
