package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// SettingsAPI reads and writes the backend configuration.
type SettingsAPI struct {
	c *transport.Client
}

// Get returns the current settings.
func (a *SettingsAPI) Get(ctx context.Context) (models.Settings, error) {
	return transport.Get[models.Settings](ctx, a.c, "/settings")
}

// Update replaces the settings and returns what the backend stored.
func (a *SettingsAPI) Update(ctx context.Context, s models.Settings) (models.Settings, error) {
	return transport.Put[models.Settings](ctx, a.c, "/settings", s)
}

// Reset restores the backend defaults.
func (a *SettingsAPI) Reset(ctx context.Context) (models.Settings, error) {
	return transport.Post[models.Settings](ctx, a.c, "/settings/reset", nil)
}

// HistoryAPI reads the backend-side search history. It is distinct from the
// local search history kept by the store package.
type HistoryAPI struct {
	c *transport.Client
}

// Recent returns up to limit recent searches, newest first.
func (a *HistoryAPI) Recent(ctx context.Context, limit int) ([]models.RecentSearch, error) {
	query := transport.NewQuery().AddInt("limit", limitOr(limit, DefaultJobsPageSize))
	return transport.Get[[]models.RecentSearch](ctx, a.c, query.With("/search-history/recent"))
}

// Clear deletes the backend search history.
func (a *HistoryAPI) Clear(ctx context.Context) error {
	_, err := transport.Delete[struct{}](ctx, a.c, "/search-history")
	return err
}
