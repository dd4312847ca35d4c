package edgar

import (
	"context"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// CompanyQuery filters GET /companies. Zero fields are omitted.
type CompanyQuery struct {
	SearchTerm string
	Page       int
	Size       int
	SortBy     string
	SortDir    string
}

// CompaniesAPI reads company records.
type CompaniesAPI struct {
	c *transport.Client
}

// List returns a page of companies matching q.
func (a *CompaniesAPI) List(ctx context.Context, q CompanyQuery) (models.Page[models.CompanyListItem], error) {
	page, size := paging(q.Page, q.Size, DefaultPageSize)
	query := transport.NewQuery().
		Add("search", q.SearchTerm).
		AddInt("page", page).
		AddInt("size", size).
		Add("sortBy", q.SortBy).
		Add("sortDir", q.SortDir)
	return transport.Get[models.Page[models.CompanyListItem]](ctx, a.c, query.With("/companies"))
}

// Get returns a company by its backend id.
func (a *CompaniesAPI) Get(ctx context.Context, id string) (models.Company, error) {
	if err := require("id", id); err != nil {
		return models.Company{}, err
	}
	return transport.Get[models.Company](ctx, a.c, "/companies/"+transport.Segment(id))
}

// GetByCIK returns a company by CIK.
func (a *CompaniesAPI) GetByCIK(ctx context.Context, cik string) (models.Company, error) {
	if err := require("cik", cik); err != nil {
		return models.Company{}, err
	}
	return transport.Get[models.Company](ctx, a.c, "/companies/cik/"+transport.Segment(cik))
}

// GetByTicker returns a company by ticker symbol.
func (a *CompaniesAPI) GetByTicker(ctx context.Context, ticker string) (models.Company, error) {
	if err := require("ticker", ticker); err != nil {
		return models.Company{}, err
	}
	return transport.Get[models.Company](ctx, a.c, "/companies/ticker/"+transport.Segment(ticker))
}

// Search is the quick name/ticker lookup used for autocompletion.
func (a *CompaniesAPI) Search(ctx context.Context, q string, limit int) ([]models.CompanyListItem, error) {
	if err := require("query", q); err != nil {
		return nil, err
	}
	query := transport.NewQuery().Add("q", q).AddInt("limit", limitOr(limit, DefaultRecentLimit))
	return transport.Get[[]models.CompanyListItem](ctx, a.c, query.With("/companies/search"))
}

// Filings returns a page of a company's filings.
func (a *CompaniesAPI) Filings(ctx context.Context, cik string, page, size int) (models.Page[models.Filing], error) {
	if err := require("cik", cik); err != nil {
		return models.Page[models.Filing]{}, err
	}
	path := "/companies/cik/" + transport.Segment(cik) + "/filings"
	return transport.Get[models.Page[models.Filing]](ctx, a.c, pageQuery(page, size, DefaultPageSize).With(path))
}
