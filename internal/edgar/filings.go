package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/infra"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// FilingQuery filters GET /filings. Zero fields are omitted.
type FilingQuery struct {
	CIK      string
	FormType string
	DateFrom string // YYYY-MM-DD
	DateTo   string
	Page     int
	Size     int
	SortBy   string
	SortDir  string
}

// FilingsAPI reads filings.
type FilingsAPI struct {
	c *transport.Client

	details   *infra.Cache[models.FilingDetail]
	formTypes *infra.Cache[[]string]
}

// List returns a page of filings matching q.
func (a *FilingsAPI) List(ctx context.Context, q FilingQuery) (models.Page[models.Filing], error) {
	page, size := paging(q.Page, q.Size, DefaultPageSize)
	query := transport.NewQuery().
		Add("cik", q.CIK).
		Add("formType", q.FormType).
		Add("dateFrom", q.DateFrom).
		Add("dateTo", q.DateTo).
		AddInt("page", page).
		AddInt("size", size).
		Add("sortBy", q.SortBy).
		Add("sortDir", q.SortDir)
	return transport.Get[models.Page[models.Filing]](ctx, a.c, query.With("/filings"))
}

// Get returns a filing with its documents by backend id.
func (a *FilingsAPI) Get(ctx context.Context, id string) (models.FilingDetail, error) {
	if err := require("id", id); err != nil {
		return models.FilingDetail{}, err
	}
	return transport.Get[models.FilingDetail](ctx, a.c, "/filings/"+transport.Segment(id))
}

// GetByAccession returns a filing by accession number.
func (a *FilingsAPI) GetByAccession(ctx context.Context, accession string) (models.FilingDetail, error) {
	if err := require("accession number", accession); err != nil {
		return models.FilingDetail{}, err
	}
	return cached(a.details, accession, func() (models.FilingDetail, error) {
		return transport.Get[models.FilingDetail](ctx, a.c, "/filings/accession/"+transport.Segment(accession))
	})
}

// ByCIK returns a page of a company's filings.
func (a *FilingsAPI) ByCIK(ctx context.Context, cik string, page, size int) (models.Page[models.Filing], error) {
	if err := require("cik", cik); err != nil {
		return models.Page[models.Filing]{}, err
	}
	path := "/filings/cik/" + transport.Segment(cik)
	return transport.Get[models.Page[models.Filing]](ctx, a.c, pageQuery(page, size, DefaultPageSize).With(path))
}

// Search posts structured criteria.
func (a *FilingsAPI) Search(ctx context.Context, req models.FilingSearchRequest) (models.Page[models.Filing], error) {
	return transport.Post[models.Page[models.Filing]](ctx, a.c, "/filings/search", req)
}

// Recent returns the latest filings across all companies.
func (a *FilingsAPI) Recent(ctx context.Context, limit int) ([]models.Filing, error) {
	query := transport.NewQuery().AddInt("limit", limitOr(limit, DefaultRecentLimit))
	return transport.Get[[]models.Filing](ctx, a.c, query.With("/filings/recent"))
}

// FormTypes lists the distinct form types stored by the backend.
func (a *FilingsAPI) FormTypes(ctx context.Context) ([]string, error) {
	return cached(a.formTypes, "all", func() ([]string, error) {
		return transport.Get[[]string](ctx, a.c, "/filings/form-types")
	})
}

// Stats returns the dashboard statistics.
func (a *FilingsAPI) Stats(ctx context.Context) (models.FilingStats, error) {
	return transport.Get[models.FilingStats](ctx, a.c, "/filings/stats")
}
