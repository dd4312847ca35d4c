package edgar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/edgardash/internal/edgartest"
	"github.com/seenimoa/edgardash/internal/transport"
	"github.com/seenimoa/edgardash/pkg/models"
)

func newTestClient(t *testing.T) (*Client, *edgartest.Server) {
	t.Helper()
	srv := edgartest.NewServer()
	t.Cleanup(srv.Close)
	tc, err := transport.New(transport.Options{BaseURL: srv.URL()})
	if err != nil {
		t.Fatalf("transport.New: %v", err)
	}
	return New(tc), srv
}

func seedApples(srv *edgartest.Server, n int) {
	for i := 0; i < n; i++ {
		srv.AddCompanies(models.Company{
			ID:   fmt.Sprintf("c%d", i),
			CIK:  fmt.Sprintf("%010d", 320193+i),
			Name: fmt.Sprintf("Apple Holdings %d", i),
		})
	}
	srv.AddCompanies(models.Company{ID: "msft", CIK: "0000789019", Name: "Microsoft Corp", Ticker: "MSFT"})
}

func TestCompaniesListSearch(t *testing.T) {
	api, srv := newTestClient(t)
	seedApples(srv, 8)

	page, err := api.Companies.List(context.Background(), CompanyQuery{SearchTerm: "Apple", Page: 1, Size: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := srv.LastRequest().URI(); got != "/companies?search=Apple&page=1&size=5" {
		t.Errorf("expected /companies?search=Apple&page=1&size=5, got %s", got)
	}
	if len(page.Content) > 5 {
		t.Errorf("expected at most 5 items, got %d", len(page.Content))
	}
	if page.TotalElements != 8 || page.Page != 1 || !page.Last {
		t.Errorf("unexpected page metadata: %+v", page)
	}
	if err := page.Validate(); err != nil {
		t.Errorf("page invariants: %v", err)
	}
}

func TestCompaniesListDefaults(t *testing.T) {
	api, srv := newTestClient(t)

	page, err := api.Companies.List(context.Background(), CompanyQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := srv.LastRequest().URI(); got != "/companies?page=0&size=20" {
		t.Errorf("expected default paging, got %s", got)
	}
	if !page.Empty() || page.Content == nil {
		t.Errorf("expected empty non-nil content, got %+v", page.Content)
	}
}

func TestCompaniesGetByCIKNotFound(t *testing.T) {
	api, _ := newTestClient(t)

	_, err := api.Companies.GetByCIK(context.Background(), "0000000001")
	if !transport.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "Company not found with CIK: 0000000001" {
		t.Errorf("expected backend message, got %q", err.Error())
	}
}

func TestFilingsListOmitsUnsetFilters(t *testing.T) {
	api, srv := newTestClient(t)
	srv.AddFilings(
		models.Filing{ID: "f1", AccessionNumber: "0000320193-24-000123", CIK: "0000320193", FormType: "10-K", FilingDate: "2024-11-01"},
		models.Filing{ID: "f2", AccessionNumber: "0000789019-24-000001", CIK: "0000789019", FormType: "10-Q", FilingDate: "2024-10-30"},
	)

	page, err := api.Filings.List(context.Background(), FilingQuery{CIK: "320193"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := srv.LastRequest()
	if !strings.Contains(req.Query, "cik=320193") {
		t.Errorf("expected cik=320193 in %q", req.Query)
	}
	for _, k := range []string{"formType", "dateFrom", "dateTo", "sortBy", "sortDir"} {
		if strings.Contains(req.Query, k) {
			t.Errorf("expected %s to be omitted from %q", k, req.Query)
		}
	}
	if len(page.Content) != 1 || page.Content[0].ID != "f1" {
		t.Errorf("expected filing f1, got %+v", page.Content)
	}
}

func TestFilingsListParamOrder(t *testing.T) {
	api, srv := newTestClient(t)

	_, err := api.Filings.List(context.Background(), FilingQuery{
		CIK: "320193", FormType: "10-K", DateFrom: "2024-01-01", DateTo: "2024-12-31",
		Page: 2, Size: 50, SortBy: "filingDate", SortDir: "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "cik=320193&formType=10-K&dateFrom=2024-01-01&dateTo=2024-12-31&page=2&size=50&sortBy=filingDate&sortDir=desc"
	if got := srv.LastRequest().Query; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFilingsSearchAndRecent(t *testing.T) {
	api, srv := newTestClient(t)
	srv.AddFilings(
		models.Filing{ID: "a", CIK: "0000320193", FormType: "10-K", FilingDate: "2024-11-01"},
		models.Filing{ID: "b", CIK: "0000320193", FormType: "8-K", FilingDate: "2024-12-01"},
		models.Filing{ID: "c", CIK: "0000320193", FormType: "10-Q", FilingDate: "2024-08-01"},
	)
	ctx := context.Background()

	page, err := api.Filings.Search(ctx, models.FilingSearchRequest{FormType: "8-K"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != "b" {
		t.Errorf("expected filing b, got %+v", page.Content)
	}
	if body := string(srv.LastRequest().Body); body != `{"formType":"8-K"}` {
		t.Errorf("expected compact search body, got %s", body)
	}

	recent, err := api.Filings.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if got := srv.LastRequest().URI(); got != "/filings/recent?limit=2" {
		t.Errorf("expected /filings/recent?limit=2, got %s", got)
	}
	if len(recent) != 2 || recent[0].ID != "b" {
		t.Errorf("expected newest first, got %+v", recent)
	}
}

func TestMissingIdentifierSendsNothing(t *testing.T) {
	api, srv := newTestClient(t)
	ctx := context.Background()

	calls := map[string]func() error{
		"company by cik": func() error { _, err := api.Companies.GetByCIK(ctx, ""); return err },
		"filing":         func() error { _, err := api.Filings.GetByAccession(ctx, " "); return err },
		"job":            func() error { _, err := api.Downloads.Job(ctx, ""); return err },
		"cancel":         func() error { return api.Downloads.CancelJob(ctx, "") },
		"concept":        func() error { _, err := api.XBRL.ConceptHistory(ctx, "320193", "us-gaap", ""); return err },
		"13f compare":    func() error { _, err := api.Form13F.Compare(ctx, "1067983", "", "2024-06-30"); return err },
		"20f year":       func() error { _, err := api.Form20F.ByFiscalYear(ctx, 0, 0, 0); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrMissingParam) {
				t.Errorf("expected ErrMissingParam, got %v", err)
			}
		})
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestDownloadsLifecycle(t *testing.T) {
	api, srv := newTestClient(t)
	ctx := context.Background()

	job, err := api.Downloads.StartFilings(ctx, "320193", []string{"10-K", "10-Q"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if body := string(srv.LastRequest().Body); body != `{"cik":"320193","formTypes":["10-K","10-Q"]}` {
		t.Errorf("unexpected start body %s", body)
	}
	if job.Status != models.JobPending || job.Type != "FILINGS" {
		t.Errorf("unexpected job %+v", job)
	}

	active, err := api.Downloads.ActiveJobs(ctx)
	if err != nil || len(active) != 1 {
		t.Fatalf("expected one active job, got %v (%v)", active, err)
	}

	if err := api.Downloads.CancelJob(ctx, job.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	req := srv.LastRequest()
	if req.Method != http.MethodDelete || req.Path != "/downloads/jobs/"+job.ID {
		t.Errorf("expected DELETE /downloads/jobs/%s, got %s %s", job.ID, req.Method, req.Path)
	}

	got, err := api.Downloads.Job(ctx, job.ID)
	if err != nil {
		t.Fatalf("job: %v", err)
	}
	if got.Status != models.JobCancelled {
		t.Errorf("expected CANCELLED, got %s", got.Status)
	}

	err = api.Downloads.CancelJob(ctx, job.ID)
	if transport.StatusCode(err) != http.StatusConflict || err.Error() != "Job already cancelled" {
		t.Errorf("expected conflict, got %v", err)
	}

	jobs, err := api.Downloads.Jobs(ctx, 0, 0)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	if srv.LastRequest().Query != "page=0&size=10" {
		t.Errorf("expected jobs default size 10, got %s", srv.LastRequest().Query)
	}
	if jobs.TotalElements != 1 {
		t.Errorf("expected 1 job, got %d", jobs.TotalElements)
	}
}

func TestSettingsUpdateRejected(t *testing.T) {
	api, srv := newTestClient(t)
	ctx := context.Background()

	s, err := api.Settings.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	s.RequestsPerSecond = 25
	_, err = api.Settings.Update(ctx, s)
	if err == nil || err.Error() != "requestsPerSecond must not exceed 10" {
		t.Fatalf("expected validation message, got %v", err)
	}
	if srv.Settings().RequestsPerSecond != 10 {
		t.Errorf("expected settings unchanged, got %+v", srv.Settings())
	}

	s.RequestsPerSecond = 5
	updated, err := api.Settings.Update(ctx, s)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RequestsPerSecond != 5 || updated.UpdatedAt == "" {
		t.Errorf("unexpected stored settings %+v", updated)
	}
}

func TestExportCSVByCriteria(t *testing.T) {
	api, srv := newTestClient(t)
	srv.AddFilings(
		models.Filing{ID: "a", AccessionNumber: "0000320193-24-000123", CIK: "0000320193", CompanyName: "Apple Inc.", FormType: "10-K", FilingDate: "2024-11-01"},
		models.Filing{ID: "b", AccessionNumber: "0000320193-24-000130", CIK: "0000320193", CompanyName: "Apple Inc.", FormType: "8-K", FilingDate: "2024-12-01"},
	)

	blob, err := api.Export.CSV(context.Background(), nil, &models.FilingSearchRequest{FormType: "10-K"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	req := srv.LastRequest()
	if req.Method != http.MethodPost || req.Path != "/export/csv" {
		t.Errorf("expected POST /export/csv, got %s %s", req.Method, req.Path)
	}
	if body := string(req.Body); body != `{"searchCriteria":{"formType":"10-K"},"format":"CSV"}` {
		t.Errorf("unexpected export body %s", body)
	}
	if blob.Filename != DefaultCSVName {
		t.Errorf("expected %s, got %s", DefaultCSVName, blob.Filename)
	}

	dir := t.TempDir()
	path, err := api.Export.Save(dir, "", blob)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "filings-export.csv" {
		t.Errorf("expected filings-export.csv, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "0000320193-24-000123") || strings.Contains(string(data), "0000320193-24-000130") {
		t.Errorf("unexpected export contents:\n%s", data)
	}
}

func TestExportJSONByIDs(t *testing.T) {
	api, srv := newTestClient(t)
	srv.AddFilings(models.Filing{ID: "a", FormType: "10-K"})

	blob, err := api.Export.JSON(context.Background(), []string{"a"}, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if body := string(srv.LastRequest().Body); body != `{"filingIds":["a"],"format":"JSON"}` {
		t.Errorf("unexpected export body %s", body)
	}
	if DefaultName(models.ExportJSON) != blob.Filename {
		t.Errorf("expected %s, got %s", DefaultJSONName, blob.Filename)
	}
}

func TestSaveRejectsNilBlob(t *testing.T) {
	api, _ := newTestClient(t)
	if _, err := api.Export.Save(t.TempDir(), "x.csv", nil); err == nil {
		t.Error("expected error for nil blob")
	}
}

// TestRequestShapes checks method, path and query for the thinner wrappers
// against a catch-all handler.
func TestRequestShapes(t *testing.T) {
	api, srv := newTestClient(t)
	ok := func(w http.ResponseWriter, r *http.Request) { edgartest.WriteData(w, http.StatusOK, nil) }
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		srv.Handle(m, "/*", ok)
	}
	srv.AddCompanies(models.Company{ID: "aapl", CIK: "0000320193", Name: "Apple Inc.", Ticker: "AAPL"})
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		uri    string
	}{
		{"company ticker", func() error { _, err := api.Companies.GetByTicker(ctx, "AAPL"); return err }, "GET", "/companies/ticker/AAPL"},
		{"company search", func() error { _, err := api.Companies.Search(ctx, "app", 0); return err }, "GET", "/companies/search?q=app&limit=10"},
		{"company filings", func() error { _, err := api.Companies.Filings(ctx, "0000320193", 1, 0); return err }, "GET", "/companies/cik/0000320193/filings?page=1&size=20"},
		{"filings by cik", func() error { _, err := api.Filings.ByCIK(ctx, "320193", 0, 5); return err }, "GET", "/filings/cik/320193?page=0&size=5"},
		{"form types", func() error { _, err := api.Filings.FormTypes(ctx); return err }, "GET", "/filings/form-types"},
		{"tickers", func() error { _, err := api.Downloads.StartTickers(ctx); return err }, "POST", "/downloads/tickers"},
		{"settings reset", func() error { _, err := api.Settings.Reset(ctx); return err }, "POST", "/settings/reset"},
		{"history recent", func() error { _, err := api.History.Recent(ctx, 0); return err }, "GET", "/search-history/recent?limit=10"},
		{"history clear", func() error { return api.History.Clear(ctx) }, "DELETE", "/search-history"},
		{"xbrl financials", func() error { _, err := api.XBRL.Financials(ctx, "0000320193-24-000123"); return err }, "GET", "/xbrl/financials/0000320193-24-000123"},
		{"xbrl facts", func() error { _, err := api.XBRL.CompanyFacts(ctx, "320193"); return err }, "GET", "/xbrl/companies/320193/facts"},
		{"xbrl concept", func() error { _, err := api.XBRL.ConceptHistory(ctx, "320193", "us-gaap", "Revenues"); return err }, "GET", "/xbrl/companies/320193/concepts/us-gaap/Revenues"},
		{"xbrl extract", func() error { _, err := api.XBRL.Extract(ctx, "https://example.com/a.xml"); return err }, "POST", "/xbrl/extract"},
		{"13f recent", func() error { _, err := api.Form13F.Recent(ctx, 5); return err }, "GET", "/form13f/recent?limit=5"},
		{"13f by cik", func() error { _, err := api.Form13F.ByCIK(ctx, "1067983", 0, 0); return err }, "GET", "/form13f/cik/1067983?page=0&size=20"},
		{"13f holdings", func() error { _, err := api.Form13F.Holdings(ctx, "0000950123-24-008740"); return err }, "GET", "/form13f/accession/0000950123-24-008740/holdings"},
		{"13f filer", func() error { _, err := api.Form13F.ByFilerName(ctx, "Berkshire Hathaway", 0, 0); return err }, "GET", "/form13f/filer?name=Berkshire+Hathaway&page=0&size=20"},
		{"13f summary", func() error { _, err := api.Form13F.PortfolioSummary(ctx, "1067983"); return err }, "GET", "/form13f/cik/1067983/portfolio-summary"},
		{"13f compare", func() error { _, err := api.Form13F.Compare(ctx, "1067983", "2024-03-31", "2024-06-30"); return err }, "GET", "/form13f/cik/1067983/compare?period1=2024-03-31&period2=2024-06-30"},
		{"13f top", func() error { _, err := api.Form13F.TopHoldings(ctx, 0); return err }, "GET", "/form13f/top-holdings?limit=10"},
		{"13dg owners", func() error { _, err := api.Form13DG.Owners(ctx, "037833100"); return err }, "GET", "/form13dg/cusip/037833100/owners"},
		{"13dg threshold", func() error { _, err := api.Form13DG.ByThreshold(ctx, 5.5, 0, 0); return err }, "GET", "/form13dg/threshold?minPercent=5.5&page=0&size=20"},
		{"13dg schedule", func() error { _, err := api.Form13DG.BySchedule(ctx, "13D", 1, 10); return err }, "GET", "/form13dg/schedule/13D?page=1&size=10"},
		{"13dg filer", func() error { _, err := api.Form13DG.ByFiler(ctx, "1067983", 0, 0); return err }, "GET", "/form13dg/filer/1067983?page=0&size=20"},
		{"8k item", func() error { _, err := api.Form8K.ByItem(ctx, "2.02", 0, 0); return err }, "GET", "/form8k/item/2.02?page=0&size=20"},
		{"8k counts", func() error { _, err := api.Form8K.ItemCounts(ctx); return err }, "GET", "/form8k/items/counts"},
		{"8k date range", func() error { _, err := api.Form8K.ByDateRange(ctx, "2024-01-01", "2024-03-31", 0, 0); return err }, "GET", "/form8k/date-range?startDate=2024-01-01&endDate=2024-03-31&page=0&size=20"},
		{"form3 owner", func() error { _, err := api.Form3.ByOwner(ctx, "Cook", 0, 0); return err }, "GET", "/form3/owner?name=Cook&page=0&size=20"},
		{"form5 symbol", func() error { _, err := api.Form5.BySymbol(ctx, "AAPL", 0, 0); return err }, "GET", "/form5/symbol/AAPL?page=0&size=20"},
		{"form5 transactions", func() error { _, err := api.Form5.Transactions(ctx, "0000320193-24-000001"); return err }, "GET", "/form5/accession/0000320193-24-000001/transactions"},
		{"6k symbol", func() error { _, err := api.Form6K.BySymbol(ctx, "TSM", 0, 0); return err }, "GET", "/form6k/symbol/TSM?page=0&size=20"},
		{"20f year", func() error { _, err := api.Form20F.ByFiscalYear(ctx, 2023, 0, 0); return err }, "GET", "/form20f/fiscal-year/2023?page=0&size=20"},
		{"20f country", func() error { _, err := api.Form20F.ByCountry(ctx, "Japan", 0, 0); return err }, "GET", "/form20f/country/Japan?page=0&size=20"},
		{"20f search", func() error { _, err := api.Form20F.Search(ctx, models.FormSearchRequest{}); return err }, "POST", "/form20f/search"},
		{"remote submissions", func() error { _, err := api.Remote.Submissions(ctx, "320193"); return err }, "GET", "/remote-edgar/submissions/320193"},
		{"remote search", func() error {
			_, err := api.Remote.Search(ctx, RemoteSearchQuery{Query: "climate risk", Forms: []string{"10-K", "8-K"}})
			return err
		}, "GET", "/remote-edgar/search?q=climate+risk&forms=10-K%2C8-K"},
		{"remote sync", func() error { _, err := api.Remote.Sync(ctx, "320193"); return err }, "POST", "/remote-edgar/sync/320193"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			req := srv.LastRequest()
			if req.Method != tt.method || req.URI() != tt.uri {
				t.Errorf("expected %s %s, got %s %s", tt.method, tt.uri, req.Method, req.URI())
			}
		})
	}
}

func TestFormSearchAppliesPaging(t *testing.T) {
	api, srv := newTestClient(t)
	srv.Handle(http.MethodPost, "/form13dg/search", func(w http.ResponseWriter, r *http.Request) {
		edgartest.WriteData(w, http.StatusOK, edgartest.Paginate([]models.Form13DG{{ID: "x", PercentOfClass: 7.1}}, 0, 20))
	})

	page, err := api.Form13DG.Search(context.Background(), models.FormSearchRequest{CUSIP: "037833100", MinPercent: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := string(srv.LastRequest().Body); body != `{"cusip":"037833100","minPercent":5,"page":0,"size":20}` {
		t.Errorf("unexpected search body %s", body)
	}
	if len(page.Content) != 1 || page.Content[0].PercentOfClass != 7.1 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestCacheServesRepeatLookups(t *testing.T) {
	srv := edgartest.NewServer()
	defer srv.Close()
	tc, err := transport.New(transport.Options{BaseURL: srv.URL()})
	if err != nil {
		t.Fatalf("transport.New: %v", err)
	}
	c := New(tc, WithCache(16, time.Minute))

	const acc = "0000320193-24-000123"
	srv.AddFilings(models.Filing{ID: "f1", AccessionNumber: acc, CIK: "0000320193", FormType: "10-K", FilingDate: "2024-11-01"})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f, err := c.Filings.GetByAccession(ctx, acc)
		if err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
		if f.FormType != "10-K" {
			t.Errorf("expected 10-K, got %q", f.FormType)
		}
	}
	if n := srv.CountRequests(http.MethodGet, "/filings/accession/"+acc); n != 1 {
		t.Errorf("expected 1 request, got %d", n)
	}

	// failures are not cached
	const missing = "0000000000-00-000000"
	for i := 0; i < 2; i++ {
		if _, err := c.Filings.GetByAccession(ctx, missing); err == nil {
			t.Fatal("expected not found")
		}
	}
	if n := srv.CountRequests(http.MethodGet, "/filings/accession/"+missing); n != 2 {
		t.Errorf("expected 2 requests for a missing filing, got %d", n)
	}
}
