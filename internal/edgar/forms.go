package edgar

import (
	"context"
	"strconv"

	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

// FormAPI holds the operations every form resource shares. T is the form's
// model; prefix is its resource root such as "/form13f".
type FormAPI[T any] struct {
	c      *transport.Client
	prefix string
}

func newFormAPI[T any](c *transport.Client, prefix string) *FormAPI[T] {
	return &FormAPI[T]{c: c, prefix: prefix}
}

// Get returns a form by backend id.
func (a *FormAPI[T]) Get(ctx context.Context, id string) (T, error) {
	if err := require("id", id); err != nil {
		var zero T
		return zero, err
	}
	return transport.Get[T](ctx, a.c, a.prefix+"/"+transport.Segment(id))
}

// GetByAccession returns a form by accession number.
func (a *FormAPI[T]) GetByAccession(ctx context.Context, accession string) (T, error) {
	if err := require("accession number", accession); err != nil {
		var zero T
		return zero, err
	}
	return transport.Get[T](ctx, a.c, a.prefix+"/accession/"+transport.Segment(accession))
}

// ByCIK returns a page of forms filed by or about a company.
func (a *FormAPI[T]) ByCIK(ctx context.Context, cik string, page, size int) (models.Page[T], error) {
	if err := require("cik", cik); err != nil {
		return models.Page[T]{}, err
	}
	return a.page(ctx, "/cik/"+transport.Segment(cik), nil, page, size)
}

// Recent returns the latest forms.
func (a *FormAPI[T]) Recent(ctx context.Context, limit int) ([]T, error) {
	query := transport.NewQuery().AddInt("limit", limitOr(limit, DefaultRecentLimit))
	return transport.Get[[]T](ctx, a.c, query.With(a.prefix+"/recent"))
}

// ByDateRange returns forms filed between from and to inclusive (YYYY-MM-DD).
func (a *FormAPI[T]) ByDateRange(ctx context.Context, from, to string, page, size int) (models.Page[T], error) {
	if err := require("start date", from); err != nil {
		return models.Page[T]{}, err
	}
	if err := require("end date", to); err != nil {
		return models.Page[T]{}, err
	}
	q := transport.NewQuery().Add("startDate", from).Add("endDate", to)
	return a.page(ctx, "/date-range", q, page, size)
}

// Search posts structured criteria. Page and size default like other lists.
func (a *FormAPI[T]) Search(ctx context.Context, criteria models.FormSearchRequest) (models.Page[T], error) {
	criteria.Page, criteria.Size = paging(criteria.Page, criteria.Size, DefaultPageSize)
	return transport.Post[models.Page[T]](ctx, a.c, a.prefix+"/search", criteria)
}

// page GETs prefix+sub with the filters in q followed by page and size.
func (a *FormAPI[T]) page(ctx context.Context, sub string, q *transport.Query, page, size int) (models.Page[T], error) {
	if q == nil {
		q = transport.NewQuery()
	}
	page, size = paging(page, size, DefaultPageSize)
	q.AddInt("page", page).AddInt("size", size)
	return transport.Get[models.Page[T]](ctx, a.c, q.With(a.prefix+sub))
}

// ---- Form 13F ----

// Form13FAPI reads institutional holdings reports.
type Form13FAPI struct {
	*FormAPI[models.Form13F]
}

// Holdings returns the information table of one filing.
func (a *Form13FAPI) Holdings(ctx context.Context, accession string) ([]models.Holding, error) {
	if err := require("accession number", accession); err != nil {
		return nil, err
	}
	return transport.Get[[]models.Holding](ctx, a.c, a.prefix+"/accession/"+transport.Segment(accession)+"/holdings")
}

// ByCUSIP returns filings holding the security.
func (a *Form13FAPI) ByCUSIP(ctx context.Context, cusip string, page, size int) (models.Page[models.Form13F], error) {
	if err := require("cusip", cusip); err != nil {
		return models.Page[models.Form13F]{}, err
	}
	return a.page(ctx, "/cusip/"+transport.Segment(cusip), nil, page, size)
}

// ByFilerName searches filings by manager name.
func (a *Form13FAPI) ByFilerName(ctx context.Context, name string, page, size int) (models.Page[models.Form13F], error) {
	if err := require("filer name", name); err != nil {
		return models.Page[models.Form13F]{}, err
	}
	return a.page(ctx, "/filer", transport.NewQuery().Add("name", name), page, size)
}

// PortfolioSummary aggregates a manager's latest report.
func (a *Form13FAPI) PortfolioSummary(ctx context.Context, cik string) (models.PortfolioSummary, error) {
	if err := require("cik", cik); err != nil {
		return models.PortfolioSummary{}, err
	}
	return transport.Get[models.PortfolioSummary](ctx, a.c, a.prefix+"/cik/"+transport.Segment(cik)+"/portfolio-summary")
}

// Compare diffs a manager's holdings between two report periods.
func (a *Form13FAPI) Compare(ctx context.Context, cik, period1, period2 string) (models.PortfolioComparison, error) {
	for _, p := range [][2]string{{"cik", cik}, {"period1", period1}, {"period2", period2}} {
		if err := require(p[0], p[1]); err != nil {
			return models.PortfolioComparison{}, err
		}
	}
	q := transport.NewQuery().Add("period1", period1).Add("period2", period2)
	return transport.Get[models.PortfolioComparison](ctx, a.c, q.With(a.prefix+"/cik/"+transport.Segment(cik)+"/compare"))
}

// TopHoldings ranks securities by aggregate reported value.
func (a *Form13FAPI) TopHoldings(ctx context.Context, limit int) ([]models.TopHolding, error) {
	q := transport.NewQuery().AddInt("limit", limitOr(limit, DefaultRecentLimit))
	return transport.Get[[]models.TopHolding](ctx, a.c, q.With(a.prefix+"/top-holdings"))
}

// ---- Schedule 13D/G ----

// Form13DGAPI reads beneficial ownership reports.
type Form13DGAPI struct {
	*FormAPI[models.Form13DG]
}

// ByCUSIP returns reports about the subject security.
func (a *Form13DGAPI) ByCUSIP(ctx context.Context, cusip string, page, size int) (models.Page[models.Form13DG], error) {
	if err := require("cusip", cusip); err != nil {
		return models.Page[models.Form13DG]{}, err
	}
	return a.page(ctx, "/cusip/"+transport.Segment(cusip), nil, page, size)
}

// Owners returns the current beneficial owners of a security.
func (a *Form13DGAPI) Owners(ctx context.Context, cusip string) ([]models.BeneficialOwner, error) {
	if err := require("cusip", cusip); err != nil {
		return nil, err
	}
	return transport.Get[[]models.BeneficialOwner](ctx, a.c, a.prefix+"/cusip/"+transport.Segment(cusip)+"/owners")
}

// ByFiler returns reports filed by one reporting person.
func (a *Form13DGAPI) ByFiler(ctx context.Context, filerCIK string, page, size int) (models.Page[models.Form13DG], error) {
	if err := require("filer cik", filerCIK); err != nil {
		return models.Page[models.Form13DG]{}, err
	}
	return a.page(ctx, "/filer/"+transport.Segment(filerCIK), nil, page, size)
}

// ByThreshold returns reports at or above minPercent of the class.
func (a *Form13DGAPI) ByThreshold(ctx context.Context, minPercent float64, page, size int) (models.Page[models.Form13DG], error) {
	q := transport.NewQuery().Set("minPercent", strconv.FormatFloat(minPercent, 'f', -1, 64))
	return a.page(ctx, "/threshold", q, page, size)
}

// BySchedule returns 13D or 13G reports.
func (a *Form13DGAPI) BySchedule(ctx context.Context, schedule string, page, size int) (models.Page[models.Form13DG], error) {
	if err := require("schedule type", schedule); err != nil {
		return models.Page[models.Form13DG]{}, err
	}
	return a.page(ctx, "/schedule/"+transport.Segment(schedule), nil, page, size)
}

// ---- Form 8-K ----

// Form8KAPI reads current reports.
type Form8KAPI struct {
	*FormAPI[models.Form8K]
}

// ByItem returns reports disclosing item, e.g. "2.02".
func (a *Form8KAPI) ByItem(ctx context.Context, item string, page, size int) (models.Page[models.Form8K], error) {
	if err := require("item", item); err != nil {
		return models.Page[models.Form8K]{}, err
	}
	return a.page(ctx, "/item/"+transport.Segment(item), nil, page, size)
}

// ItemCounts returns how often each item has been reported.
func (a *Form8KAPI) ItemCounts(ctx context.Context) ([]models.ItemCount, error) {
	return transport.Get[[]models.ItemCount](ctx, a.c, a.prefix+"/items/counts")
}

// ---- Forms 3 and 5 ----

// Form3API reads initial ownership statements.
type Form3API struct {
	*FormAPI[models.Form3]
}

// ByOwner searches by reporting owner name.
func (a *Form3API) ByOwner(ctx context.Context, name string, page, size int) (models.Page[models.Form3], error) {
	return byOwner(ctx, a.FormAPI, name, page, size)
}

// BySymbol returns statements about the issuer trading as symbol.
func (a *Form3API) BySymbol(ctx context.Context, symbol string, page, size int) (models.Page[models.Form3], error) {
	return bySymbol(ctx, a.FormAPI, symbol, page, size)
}

// Form5API reads annual ownership change statements.
type Form5API struct {
	*FormAPI[models.Form5]
}

// ByOwner searches by reporting owner name.
func (a *Form5API) ByOwner(ctx context.Context, name string, page, size int) (models.Page[models.Form5], error) {
	return byOwner(ctx, a.FormAPI, name, page, size)
}

// BySymbol returns statements about the issuer trading as symbol.
func (a *Form5API) BySymbol(ctx context.Context, symbol string, page, size int) (models.Page[models.Form5], error) {
	return bySymbol(ctx, a.FormAPI, symbol, page, size)
}

// Transactions returns the transaction table of one filing.
func (a *Form5API) Transactions(ctx context.Context, accession string) ([]models.InsiderTransaction, error) {
	if err := require("accession number", accession); err != nil {
		return nil, err
	}
	return transport.Get[[]models.InsiderTransaction](ctx, a.c, a.prefix+"/accession/"+transport.Segment(accession)+"/transactions")
}

func byOwner[T any](ctx context.Context, a *FormAPI[T], name string, page, size int) (models.Page[T], error) {
	if err := require("owner name", name); err != nil {
		return models.Page[T]{}, err
	}
	return a.page(ctx, "/owner", transport.NewQuery().Add("name", name), page, size)
}

func bySymbol[T any](ctx context.Context, a *FormAPI[T], symbol string, page, size int) (models.Page[T], error) {
	if err := require("symbol", symbol); err != nil {
		return models.Page[T]{}, err
	}
	return a.page(ctx, "/symbol/"+transport.Segment(symbol), nil, page, size)
}

// ---- Foreign private issuers ----

// Form6KAPI reads foreign issuer reports.
type Form6KAPI struct {
	*FormAPI[models.Form6K]
}

// BySymbol returns reports of the issuer trading as symbol.
func (a *Form6KAPI) BySymbol(ctx context.Context, symbol string, page, size int) (models.Page[models.Form6K], error) {
	return bySymbol(ctx, a.FormAPI, symbol, page, size)
}

// ByReportDate returns reports whose filing date falls in [from, to].
func (a *Form6KAPI) ByReportDate(ctx context.Context, from, to string, page, size int) (models.Page[models.Form6K], error) {
	return a.ByDateRange(ctx, from, to, page, size)
}

// Form20FAPI reads foreign issuer annual reports.
type Form20FAPI struct {
	*FormAPI[models.Form20F]
}

// ByFiscalYear returns reports for one fiscal year.
func (a *Form20FAPI) ByFiscalYear(ctx context.Context, year, page, size int) (models.Page[models.Form20F], error) {
	if year <= 0 {
		return models.Page[models.Form20F]{}, require("fiscal year", "")
	}
	return a.page(ctx, "/fiscal-year/"+strconv.Itoa(year), nil, page, size)
}

// ByCountry returns reports by country of incorporation.
func (a *Form20FAPI) ByCountry(ctx context.Context, country string, page, size int) (models.Page[models.Form20F], error) {
	if err := require("country", country); err != nil {
		return models.Page[models.Form20F]{}, err
	}
	return a.page(ctx, "/country/"+transport.Segment(country), nil, page, size)
}
