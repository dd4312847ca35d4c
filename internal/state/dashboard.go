package state

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/pkg/models"
)

// DashboardData is everything the overview page shows.
type DashboardData struct {
	Stats          models.FilingStats
	RecentSearches []models.RecentSearch
	RecentFilings  []models.Filing
}

// Dashboard loads the overview in one round of concurrent requests.
type Dashboard struct {
	cell[Snapshot[DashboardData]]
	api   *edgar.Client
	limit int
}

// NewDashboard returns an unloaded dashboard showing limit recent items.
func NewDashboard(api *edgar.Client, limit int) *Dashboard {
	if limit <= 0 {
		limit = edgar.DefaultRecentLimit
	}
	return &Dashboard{api: api, limit: limit}
}

// State returns the current snapshot.
func (d *Dashboard) State() Snapshot[DashboardData] { return d.get() }

// Subscribe registers fn for every state change.
func (d *Dashboard) Subscribe(fn func(Snapshot[DashboardData])) (unsubscribe func()) {
	return d.subscribe(fn)
}

// Load fetches stats, recent searches and recent filings concurrently. The
// state changes once, after all three finish; if any fails none of the
// results are kept and the first error is reported.
func (d *Dashboard) Load(ctx context.Context) Snapshot[DashboardData] {
	snap, _ := load(ctx, &d.cell, d.fetch)
	return snap
}

// Refresh reloads the dashboard.
func (d *Dashboard) Refresh(ctx context.Context) Snapshot[DashboardData] { return d.Load(ctx) }

func (d *Dashboard) fetch(ctx context.Context) (DashboardData, error) {
	var out DashboardData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := d.api.Filings.Stats(ctx)
		out.Stats = stats
		return err
	})
	g.Go(func() error {
		searches, err := d.api.History.Recent(ctx, d.limit)
		out.RecentSearches = searches
		return err
	})
	g.Go(func() error {
		filings, err := d.api.Filings.Recent(ctx, d.limit)
		out.RecentFilings = filings
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardData{}, err
	}
	return out, nil
}
