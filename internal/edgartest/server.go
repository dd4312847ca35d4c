// Package edgartest provides an in-memory EDGAR backend for tests. It speaks
// the same envelope and pagination contract as the real service and records
// every request so callers can assert on paths, query strings and bodies.
package edgartest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/seenimoa/edgardash/pkg/models"
)

// Request is a recorded incoming request.
type Request struct {
	Method string
	Path   string // path relative to /api, without the query
	Query  string // raw query string
	Body   []byte
}

// URI returns path?query as the client wrote it.
func (r Request) URI() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Server is a fake backend. Seed its fields before issuing requests; use
// Handle to add or override routes.
type Server struct {
	srv    *httptest.Server
	router chi.Router

	mu        sync.Mutex
	requests  []Request
	companies []models.Company
	filings   []models.Filing
	jobs      map[string]*models.DownloadJob
	jobOrder  []string
	settings  models.Settings
	searches  []models.RecentSearch
	stats     models.FilingStats
	nextJobID int
}

// NewServer starts a fake backend. Call Close when done.
func NewServer() *Server {
	s := &Server{
		jobs:      make(map[string]*models.DownloadJob),
		settings: models.Settings{
			ID:                "default",
			EdgarUserAgent:    "edgardash test@example.com",
			RequestsPerSecond: 10,
		},
	}
	s.router = s.buildRouter()
	s.srv = httptest.NewServer(s.router)
	return s
}

// URL returns the API base URL (including /api) for transport.Options.
func (s *Server) URL() string { return s.srv.URL + "/api" }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

// Handle registers a handler for method and a chi path pattern relative to
// /api. It takes precedence over the built-in routes.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.Method(method, "/api"+pattern, h)
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or a zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// CountRequests returns how many requests matched method and path.
func (s *Server) CountRequests(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// AddCompanies seeds companies.
func (s *Server) AddCompanies(cs ...models.Company) {
	s.mu.Lock()
	s.companies = append(s.companies, cs...)
	s.mu.Unlock()
}

// AddFilings seeds filings.
func (s *Server) AddFilings(fs ...models.Filing) {
	s.mu.Lock()
	s.filings = append(s.filings, fs...)
	s.mu.Unlock()
}

// AddJob seeds a download job.
func (s *Server) AddJob(j models.DownloadJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := j
	if _, ok := s.jobs[j.ID]; !ok {
		s.jobOrder = append(s.jobOrder, j.ID)
	}
	s.jobs[j.ID] = &cp
}

// SetJobStatus changes a job's status, simulating server-side progress.
func (s *Server) SetJobStatus(id string, status models.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.Status = status
		if status == models.JobCompleted {
			j.Progress = 100
		}
	}
}

// Job returns a copy of a job.
func (s *Server) Job(id string) (models.DownloadJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return models.DownloadJob{}, false
	}
	return *j, true
}

// SetStats sets the dashboard statistics.
func (s *Server) SetStats(st models.FilingStats) {
	s.mu.Lock()
	s.stats = st
	s.mu.Unlock()
}

// AddSearches seeds backend search history, most recent first.
func (s *Server) AddSearches(rs ...models.RecentSearch) {
	s.mu.Lock()
	s.searches = append(s.searches, rs...)
	s.mu.Unlock()
}

// Settings returns the stored settings.
func (s *Server) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// --- Envelope helpers ---

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, models.Envelope[any]{
		Success:   true,
		Message:   "OK",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteError writes a failure envelope with message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, models.Envelope[any]{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env models.Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// Paging reads page/size query parameters with defaults.
func Paging(r *http.Request, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultSize
	}
	return page, size
}

// Paginate slices items into a consistent page. Pages past the end serve the
// last page.
func Paginate[T any](items []T, page, size int) models.Page[T] {
	p := models.NewPage[T](nil, page, size, int64(len(items)))
	start := min(p.Page*size, len(items))
	end := min(start+size, len(items))
	p.Content = append([]T{}, items[start:end]...)
	return p
}

// --- Router ---

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(body)))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, "/api"),
			Query:  r.URL.RawQuery,
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.record)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "No handler for "+r.Method+" "+r.URL.Path)
	})

	r.Get("/api/companies", s.handleListCompanies)
	r.Get("/api/companies/search", s.handleCompanySearch)
	r.Get("/api/companies/cik/{cik}", s.handleCompanyByCIK)
	r.Get("/api/companies/ticker/{ticker}", s.handleCompanyByTicker)
	r.Get("/api/companies/{id}", s.handleCompanyByID)

	r.Get("/api/filings", s.handleListFilings)
	r.Get("/api/filings/recent", s.handleRecentFilings)
	r.Get("/api/filings/stats", s.handleStats)
	r.Get("/api/filings/accession/{accession}", s.handleFilingByAccession)
	r.Post("/api/filings/search", s.handleSearchFilings)

	r.Post("/api/downloads/tickers", s.handleStartJob("TICKERS"))
	r.Post("/api/downloads/submissions", s.handleStartJob("SUBMISSIONS"))
	r.Post("/api/downloads/filings", s.handleStartJob("FILINGS"))
	r.Post("/api/downloads/bulk", s.handleStartJob("BULK"))
	r.Get("/api/downloads/jobs", s.handleListJobs)
	r.Get("/api/downloads/jobs/active", s.handleActiveJobs)
	r.Get("/api/downloads/jobs/{id}", s.handleGetJob)
	r.Delete("/api/downloads/jobs/{id}", s.handleCancelJob)

	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handlePutSettings)

	r.Get("/api/search-history/recent", s.handleRecentSearches)

	r.Post("/api/export/csv", s.handleExport("text/csv", "filings-export.csv"))
	r.Post("/api/export/json", s.handleExport("application/json", "filings-export.json"))
	return r
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	page, size := Paging(r, 20)
	term := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.Lock()
	var matched []models.CompanyListItem
	for _, c := range s.companies {
		if term != "" && !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.EqualFold(c.Ticker, term) && !strings.Contains(c.CIK, term) {
			continue
		}
		matched = append(matched, models.CompanyListItem{
			ID: c.ID, CIK: c.CIK, Name: c.Name, Ticker: c.Ticker,
			SICDescription: c.SICDescription, FilingCount: c.FilingCount,
		})
	}
	s.mu.Unlock()

	WriteData(w, http.StatusOK, Paginate(matched, page, size))
}

func (s *Server) handleCompanyByCIK(w http.ResponseWriter, r *http.Request) {
	cik := chi.URLParam(r, "cik")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.CIK == cik {
			WriteData(w, http.StatusOK, c)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "Company not found with CIK: "+cik)
}

func (s *Server) handleCompanySearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	out := []models.CompanyListItem{}
	for _, c := range s.companies {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), q) || strings.EqualFold(c.Ticker, q) {
			out = append(out, models.CompanyListItem{ID: c.ID, CIK: c.CIK, Name: c.Name, Ticker: c.Ticker})
		}
	}
	s.mu.Unlock()
	WriteData(w, http.StatusOK, out)
}

func (s *Server) handleCompanyByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if strings.EqualFold(c.Ticker, ticker) {
			WriteData(w, http.StatusOK, c)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "Company not found with ticker: "+ticker)
}

func (s *Server) handleCompanyByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.ID == id {
			WriteData(w, http.StatusOK, c)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "Company not found with id: "+id)
}

func (s *Server) matchFilings(cik, formType, from, to string) []models.Filing {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Filing
	for _, f := range s.filings {
		if cik != "" && strings.TrimLeft(f.CIK, "0") != strings.TrimLeft(cik, "0") {
			continue
		}
		if formType != "" && f.FormType != formType {
			continue
		}
		if from != "" && f.FilingDate < from {
			continue
		}
		if to != "" && f.FilingDate > to {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *Server) handleListFilings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size := Paging(r, 20)
	matched := s.matchFilings(q.Get("cik"), q.Get("formType"), q.Get("dateFrom"), q.Get("dateTo"))
	WriteData(w, http.StatusOK, Paginate(matched, page, size))
}

func (s *Server) handleSearchFilings(w http.ResponseWriter, r *http.Request) {
	var req models.FilingSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	size := req.Size
	if size <= 0 {
		size = 20
	}
	matched := s.matchFilings(req.CIK, req.FormType, req.DateFrom, req.DateTo)
	WriteData(w, http.StatusOK, Paginate(matched, req.Page, size))
}

func (s *Server) handleRecentFilings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	all := s.matchFilings("", "", "", "")
	sort.SliceStable(all, func(i, j int) bool { return all[i].FilingDate > all[j].FilingDate })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	if all == nil {
		all = []models.Filing{}
	}
	WriteData(w, http.StatusOK, all)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.stats
	s.mu.Unlock()
	WriteData(w, http.StatusOK, st)
}

func (s *Server) handleFilingByAccession(w http.ResponseWriter, r *http.Request) {
	acc := chi.URLParam(r, "accession")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.filings {
		if f.AccessionNumber == acc {
			WriteData(w, http.StatusOK, models.FilingDetail{Filing: f})
			return
		}
	}
	WriteError(w, http.StatusNotFound, "Filing not found: "+acc)
}

func (s *Server) handleStartJob(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DownloadRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
		}
		s.mu.Lock()
		s.nextJobID++
		job := &models.DownloadJob{
			ID:        fmt.Sprintf("job-%d", s.nextJobID),
			Type:      kind,
			Status:    models.JobPending,
			CIK:       req.CIK,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		s.jobs[job.ID] = job
		s.jobOrder = append(s.jobOrder, job.ID)
		cp := *job
		s.mu.Unlock()
		WriteData(w, http.StatusAccepted, cp)
	}
}

func (s *Server) jobList(activeOnly bool) []models.DownloadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.DownloadJob{}
	for _, id := range s.jobOrder {
		j := s.jobs[id]
		if activeOnly && j.Status.IsTerminal() {
			continue
		}
		out = append(out, *j)
	}
	return out
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	page, size := Paging(r, 10)
	WriteData(w, http.StatusOK, Paginate(s.jobList(false), page, size))
}

func (s *Server) handleActiveJobs(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, s.jobList(true))
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.Job(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, http.StatusNotFound, "Download job not found")
		return
	}
	WriteData(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		WriteError(w, http.StatusNotFound, "Download job not found")
		return
	}
	if j.Status.IsTerminal() {
		status := j.Status
		s.mu.Unlock()
		WriteError(w, http.StatusConflict, "Job already "+strings.ToLower(string(status)))
		return
	}
	j.Status = models.JobCancelled
	s.mu.Unlock()
	WriteData(w, http.StatusOK, nil)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, s.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.RequestsPerSecond > 10 {
		WriteError(w, http.StatusBadRequest, "requestsPerSecond must not exceed 10")
		return
	}
	in.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.mu.Lock()
	s.settings = in
	s.mu.Unlock()
	WriteData(w, http.StatusOK, in)
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	out := append([]models.RecentSearch{}, s.searches...)
	s.mu.Unlock()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	WriteData(w, http.StatusOK, out)
}

func (s *Server) handleExport(contentType, filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid export request")
			return
		}
		var matched []models.Filing
		if req.SearchCriteria != nil {
			c := req.SearchCriteria
			matched = s.matchFilings(c.CIK, c.FormType, c.DateFrom, c.DateTo)
		} else {
			ids := make(map[string]bool, len(req.FilingIDs))
			for _, id := range req.FilingIDs {
				ids[id] = true
			}
			for _, f := range s.matchFilings("", "", "", "") {
				if ids[f.ID] {
					matched = append(matched, f)
				}
			}
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if req.Format == models.ExportJSON {
			json.NewEncoder(w).Encode(matched)
			return
		}
		io.WriteString(w, "accessionNumber,cik,companyName,formType,filingDate\n")
		for _, f := range matched {
			fmt.Fprintf(w, "%s,%s,%s,%s,%s\n", f.AccessionNumber, f.CIK, f.CompanyName, f.FormType, f.FilingDate)
		}
	}
}
