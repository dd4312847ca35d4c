package transport

import "testing"

func TestQueryOmitsEmptyValues(t *testing.T) {
	q := NewQuery().
		Add("cik", "320193").
		Add("formType", "").
		Add("dateFrom", "").
		Add("dateTo", "")
	if got := q.Encode(); got != "cik=320193" {
		t.Errorf("expected cik=320193, got %q", got)
	}
}

func TestQueryKeepsInsertionOrder(t *testing.T) {
	q := NewQuery().Add("search", "Apple").AddInt("page", 1).AddInt("size", 5)
	if got := q.With("/companies"); got != "/companies?search=Apple&page=1&size=5" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestQueryHelpers(t *testing.T) {
	q := NewQuery().
		AddIntIfSet("limit", 0).
		AddIntIfSet("year", 2024).
		AddFloatIfSet("minPercent", 5.5).
		AddFloatIfSet("minValue", 0).
		AddList("forms", []string{"10-K", "10-Q"}).
		AddList("empty", nil).
		Add("q", "a b&c")
	want := "year=2024&minPercent=5.5&forms=10-K%2C10-Q&q=a+b%26c"
	if got := q.Encode(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if NewQuery().With("/filings/recent") != "/filings/recent" {
		t.Error("empty query should leave the path unchanged")
	}
}

func TestSegment(t *testing.T) {
	if got := Segment("BRK/B"); got != "BRK%2FB" {
		t.Errorf("Segment = %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/companies?search=Apple&page=1", "/companies"},
		{"/companies/cik/0000320193/filings?page=0", "/companies/cik/{n}/filings"},
		{"/filings/accession/0000320193-24-000123", "/filings/accession/{accession}"},
		{"/downloads/jobs/3f2b9a1e-4c5d-4e6f-8a9b-0c1d2e3f4a5b", "/downloads/jobs/{id}"},
		{"/filings/65a1b2c3d4e5f6a7b8c9d0e1", "/filings/{id}"},
		{"/form13f/cik/1067983/compare?period1=2024-03-31", "/form13f/cik/{n}/compare"},
		{"/form20f/fiscal-year/2024", "/form20f/fiscal-year/{n}"},
		{"/form3/recent", "/form3/recent"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.input); got != tt.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
