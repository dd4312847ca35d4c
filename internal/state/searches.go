package state

import (
	"context"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/pkg/models"
)

// ---- Companies and filings ----

// CompanySearch searches companies by name, ticker or CIK fragment.
type CompanySearch struct {
	*Search[models.CompanyListItem]
	api *edgar.CompaniesAPI
}

// NewCompanySearch returns an empty company search.
func NewCompanySearch(c *edgar.Client) *CompanySearch {
	return &CompanySearch{Search: NewSearch[models.CompanyListItem](edgar.DefaultPageSize), api: c.Companies}
}

// ByTerm searches by free text.
func (s *CompanySearch) ByTerm(ctx context.Context, term string, page, size int) ListState[models.CompanyListItem] {
	return s.Filter(ctx, edgar.CompanyQuery{SearchTerm: term, Page: page, Size: size})
}

// Filter runs a fully specified company query.
func (s *CompanySearch) Filter(ctx context.Context, q edgar.CompanyQuery) ListState[models.CompanyListItem] {
	return s.Run(ctx, q.Page, q.Size, func(ctx context.Context, page, size int) (models.Page[models.CompanyListItem], error) {
		q := q
		q.Page, q.Size = page, size
		return s.api.List(ctx, q)
	})
}

// FilingSearch searches filings.
type FilingSearch struct {
	*Search[models.Filing]
	api *edgar.FilingsAPI
}

// NewFilingSearch returns an empty filing search.
func NewFilingSearch(c *edgar.Client) *FilingSearch {
	return &FilingSearch{Search: NewSearch[models.Filing](edgar.DefaultPageSize), api: c.Filings}
}

// Filter lists filings matching q.
func (s *FilingSearch) Filter(ctx context.Context, q edgar.FilingQuery) ListState[models.Filing] {
	return s.Run(ctx, q.Page, q.Size, func(ctx context.Context, page, size int) (models.Page[models.Filing], error) {
		q := q
		q.Page, q.Size = page, size
		return s.api.List(ctx, q)
	})
}

// ByCIK lists a company's filings.
func (s *FilingSearch) ByCIK(ctx context.Context, cik string, page, size int) ListState[models.Filing] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Filing], error) {
		return s.api.ByCIK(ctx, cik, page, size)
	})
}

// Criteria posts structured criteria.
func (s *FilingSearch) Criteria(ctx context.Context, req models.FilingSearchRequest) ListState[models.Filing] {
	return s.Run(ctx, req.Page, req.Size, func(ctx context.Context, page, size int) (models.Page[models.Filing], error) {
		req := req
		req.Page, req.Size = page, size
		return s.api.Search(ctx, req)
	})
}

// ---- Forms ----

// FormSearch holds the searches every form resource supports.
type FormSearch[T any] struct {
	*Search[T]
	api *edgar.FormAPI[T]
}

func newFormSearch[T any](api *edgar.FormAPI[T]) FormSearch[T] {
	return FormSearch[T]{Search: NewSearch[T](edgar.DefaultPageSize), api: api}
}

// ByCIK lists forms filed by or about a company.
func (s *FormSearch[T]) ByCIK(ctx context.Context, cik string, page, size int) ListState[T] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[T], error) {
		return s.api.ByCIK(ctx, cik, page, size)
	})
}

// ByDateRange lists forms filed between from and to.
func (s *FormSearch[T]) ByDateRange(ctx context.Context, from, to string, page, size int) ListState[T] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[T], error) {
		return s.api.ByDateRange(ctx, from, to, page, size)
	})
}

// Criteria posts structured criteria.
func (s *FormSearch[T]) Criteria(ctx context.Context, req models.FormSearchRequest) ListState[T] {
	return s.Run(ctx, req.Page, req.Size, func(ctx context.Context, page, size int) (models.Page[T], error) {
		req := req
		req.Page, req.Size = page, size
		return s.api.Search(ctx, req)
	})
}

// Form13FSearch searches institutional holdings reports.
type Form13FSearch struct {
	FormSearch[models.Form13F]
	api *edgar.Form13FAPI
}

// NewForm13FSearch returns an empty 13F search.
func NewForm13FSearch(c *edgar.Client) *Form13FSearch {
	return &Form13FSearch{FormSearch: newFormSearch(c.Form13F.FormAPI), api: c.Form13F}
}

// ByCUSIP lists reports holding a security.
func (s *Form13FSearch) ByCUSIP(ctx context.Context, cusip string, page, size int) ListState[models.Form13F] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13F], error) {
		return s.api.ByCUSIP(ctx, cusip, page, size)
	})
}

// ByFilerName lists reports by manager name.
func (s *Form13FSearch) ByFilerName(ctx context.Context, name string, page, size int) ListState[models.Form13F] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13F], error) {
		return s.api.ByFilerName(ctx, name, page, size)
	})
}

// Form13DGSearch searches beneficial ownership reports.
type Form13DGSearch struct {
	FormSearch[models.Form13DG]
	api *edgar.Form13DGAPI
}

// NewForm13DGSearch returns an empty 13D/G search.
func NewForm13DGSearch(c *edgar.Client) *Form13DGSearch {
	return &Form13DGSearch{FormSearch: newFormSearch(c.Form13DG.FormAPI), api: c.Form13DG}
}

// ByCUSIP lists reports about a security.
func (s *Form13DGSearch) ByCUSIP(ctx context.Context, cusip string, page, size int) ListState[models.Form13DG] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13DG], error) {
		return s.api.ByCUSIP(ctx, cusip, page, size)
	})
}

// ByFiler lists reports filed by one reporting person.
func (s *Form13DGSearch) ByFiler(ctx context.Context, filerCIK string, page, size int) ListState[models.Form13DG] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13DG], error) {
		return s.api.ByFiler(ctx, filerCIK, page, size)
	})
}

// ByThreshold lists reports at or above minPercent.
func (s *Form13DGSearch) ByThreshold(ctx context.Context, minPercent float64, page, size int) ListState[models.Form13DG] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13DG], error) {
		return s.api.ByThreshold(ctx, minPercent, page, size)
	})
}

// BySchedule lists 13D or 13G reports.
func (s *Form13DGSearch) BySchedule(ctx context.Context, schedule string, page, size int) ListState[models.Form13DG] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form13DG], error) {
		return s.api.BySchedule(ctx, schedule, page, size)
	})
}

// Form8KSearch searches current reports.
type Form8KSearch struct {
	FormSearch[models.Form8K]
	api *edgar.Form8KAPI
}

// NewForm8KSearch returns an empty 8-K search.
func NewForm8KSearch(c *edgar.Client) *Form8KSearch {
	return &Form8KSearch{FormSearch: newFormSearch(c.Form8K.FormAPI), api: c.Form8K}
}

// ByItem lists reports disclosing item.
func (s *Form8KSearch) ByItem(ctx context.Context, item string, page, size int) ListState[models.Form8K] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form8K], error) {
		return s.api.ByItem(ctx, item, page, size)
	})
}

// Form3Search searches initial ownership statements.
type Form3Search struct {
	FormSearch[models.Form3]
	api *edgar.Form3API
}

// NewForm3Search returns an empty Form 3 search.
func NewForm3Search(c *edgar.Client) *Form3Search {
	return &Form3Search{FormSearch: newFormSearch(c.Form3.FormAPI), api: c.Form3}
}

// ByOwner lists statements by reporting owner name.
func (s *Form3Search) ByOwner(ctx context.Context, name string, page, size int) ListState[models.Form3] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form3], error) {
		return s.api.ByOwner(ctx, name, page, size)
	})
}

// BySymbol lists statements about an issuer.
func (s *Form3Search) BySymbol(ctx context.Context, symbol string, page, size int) ListState[models.Form3] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form3], error) {
		return s.api.BySymbol(ctx, symbol, page, size)
	})
}

// Form5Search searches annual ownership change statements.
type Form5Search struct {
	FormSearch[models.Form5]
	api *edgar.Form5API
}

// NewForm5Search returns an empty Form 5 search.
func NewForm5Search(c *edgar.Client) *Form5Search {
	return &Form5Search{FormSearch: newFormSearch(c.Form5.FormAPI), api: c.Form5}
}

// ByOwner lists statements by reporting owner name.
func (s *Form5Search) ByOwner(ctx context.Context, name string, page, size int) ListState[models.Form5] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form5], error) {
		return s.api.ByOwner(ctx, name, page, size)
	})
}

// BySymbol lists statements about an issuer.
func (s *Form5Search) BySymbol(ctx context.Context, symbol string, page, size int) ListState[models.Form5] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form5], error) {
		return s.api.BySymbol(ctx, symbol, page, size)
	})
}

// Form6KSearch searches foreign issuer reports.
type Form6KSearch struct {
	FormSearch[models.Form6K]
	api *edgar.Form6KAPI
}

// NewForm6KSearch returns an empty 6-K search.
func NewForm6KSearch(c *edgar.Client) *Form6KSearch {
	return &Form6KSearch{FormSearch: newFormSearch(c.Form6K.FormAPI), api: c.Form6K}
}

// BySymbol lists reports of an issuer.
func (s *Form6KSearch) BySymbol(ctx context.Context, symbol string, page, size int) ListState[models.Form6K] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form6K], error) {
		return s.api.BySymbol(ctx, symbol, page, size)
	})
}

// Form20FSearch searches foreign issuer annual reports.
type Form20FSearch struct {
	FormSearch[models.Form20F]
	api *edgar.Form20FAPI
}

// NewForm20FSearch returns an empty 20-F search.
func NewForm20FSearch(c *edgar.Client) *Form20FSearch {
	return &Form20FSearch{FormSearch: newFormSearch(c.Form20F.FormAPI), api: c.Form20F}
}

// ByFiscalYear lists reports for one fiscal year.
func (s *Form20FSearch) ByFiscalYear(ctx context.Context, year, page, size int) ListState[models.Form20F] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form20F], error) {
		return s.api.ByFiscalYear(ctx, year, page, size)
	})
}

// ByCountry lists reports by country of incorporation.
func (s *Form20FSearch) ByCountry(ctx context.Context, country string, page, size int) ListState[models.Form20F] {
	return s.Run(ctx, page, size, func(ctx context.Context, page, size int) (models.Page[models.Form20F], error) {
		return s.api.ByCountry(ctx, country, page, size)
	})
}
