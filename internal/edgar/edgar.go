// Package edgar exposes one typed API per backend resource. Each method maps
// to exactly one REST call; responses are returned as the backend sent them.
package edgar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// Default page sizes per resource family.
const (
	DefaultPageSize     = 20 // companies, filings, forms
	DefaultJobsPageSize = 10 // downloads and search history
	DefaultRecentLimit  = 10
)

// ErrMissingParam is returned when a required identifier is empty. No
// request is sent in that case.
var ErrMissingParam = errors.New("missing required parameter")

// Client groups every resource API over a shared transport.
type Client struct {
	Companies *CompaniesAPI
	Filings   *FilingsAPI
	Downloads *DownloadsAPI
	Settings  *SettingsAPI
	History   *HistoryAPI
	Export    *ExportAPI
	XBRL      *XBRLAPI
	Remote    *RemoteAPI

	Form13F  *Form13FAPI
	Form13DG *Form13DGAPI
	Form8K   *Form8KAPI
	Form3    *Form3API
	Form5    *Form5API
	Form6K   *Form6KAPI
	Form20F  *Form20FAPI
}

// Option configures a Client.
type Option func(*Client)

// WithCache keeps responses that do not change once published: filing
// details by accession number, the form type list and EDGAR's ticker map.
// A non-positive size or ttl leaves caching off.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		if size <= 0 || ttl <= 0 {
			return
		}
		c.Filings.details = infra.NewCache[models.FilingDetail]("filing_detail", size, ttl)
		c.Filings.formTypes = infra.NewCache[[]string]("form_types", 1, ttl)
		c.Remote.tickers = infra.NewCache[[]models.RemoteTicker]("remote_tickers", 1, ttl)
	}
}

// New wires every resource API to c.
func New(c *transport.Client, opts ...Option) *Client {
	client := &Client{
		Companies: &CompaniesAPI{c: c},
		Filings:   &FilingsAPI{c: c},
		Downloads: &DownloadsAPI{c: c},
		Settings:  &SettingsAPI{c: c},
		History:   &HistoryAPI{c: c},
		Export:    &ExportAPI{c: c},
		XBRL:      &XBRLAPI{c: c},
		Remote:    &RemoteAPI{c: c},

		Form13F:  &Form13FAPI{FormAPI: newFormAPI[models.Form13F](c, "/form13f")},
		Form13DG: &Form13DGAPI{FormAPI: newFormAPI[models.Form13DG](c, "/form13dg")},
		Form8K:   &Form8KAPI{FormAPI: newFormAPI[models.Form8K](c, "/form8k")},
		Form3:    &Form3API{FormAPI: newFormAPI[models.Form3](c, "/form3")},
		Form5:    &Form5API{FormAPI: newFormAPI[models.Form5](c, "/form5")},
		Form6K:   &Form6KAPI{FormAPI: newFormAPI[models.Form6K](c, "/form6k")},
		Form20F:  &Form20FAPI{FormAPI: newFormAPI[models.Form20F](c, "/form20f")},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// cached serves key from cache when possible and stores successful fetches.
// A nil cache always fetches.
func cached[V any](cache *infra.Cache[V], key string, fetch func() (V, error)) (V, error) {
	if cache == nil {
		return fetch()
	}
	if v, ok := cache.Get(key); ok {
		return v, nil
	}
	v, err := fetch()
	if err == nil {
		cache.Set(key, v)
	}
	return v, err
}

func require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", name, ErrMissingParam)
	}
	return nil
}

// paging normalizes page and size, applying def when size is not positive.
func paging(page, size, def int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = def
	}
	return page, size
}

func pageQuery(page, size, def int) *transport.Query {
	page, size = paging(page, size, def)
	return transport.NewQuery().AddInt("page", page).AddInt("size", size)
}

func limitOr(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
