package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// ── Page Tests ──

func TestNewPageInvariants(t *testing.T) {
	tests := []struct {
		name  string
		items int
		page  int
		size  int
		total int64
	}{
		{"first of many", 10, 0, 10, 95},
		{"middle", 10, 4, 10, 95},
		{"last partial", 5, 9, 10, 95},
		{"single page", 3, 0, 10, 3},
		{"empty", 0, 0, 20, 0},
		{"exact multiple last", 5, 1, 5, 10},
		{"past the end", 0, 7, 10, 25},
		{"past an empty result", 0, 3, 10, 0},
		{"negative page", 10, -1, 10, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(make([]int, tt.items), tt.page, tt.size, tt.total)
			if err := p.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if p.First != (p.Page == 0) {
				t.Errorf("first=%t for page %d", p.First, p.Page)
			}
			if p.HasNext == p.Last {
				t.Errorf("hasNext=%t last=%t", p.HasNext, p.Last)
			}
			if p.HasPrevious == p.First {
				t.Errorf("hasPrevious=%t first=%t", p.HasPrevious, p.First)
			}
		})
	}
}

func TestNewPageTotals(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 2, 2, 7)
	if p.TotalPages != 4 {
		t.Errorf("expected 4 total pages, got %d", p.TotalPages)
	}
	if p.Last {
		t.Error("page 2 of 4 should not be last")
	}
	empty := NewPage[string](nil, 0, 10, 0)
	if empty.Content == nil {
		t.Error("expected non-nil content for empty page")
	}
	if !empty.First || !empty.Last {
		t.Errorf("empty page should be first and last, got first=%t last=%t", empty.First, empty.Last)
	}
	beyond := NewPage[string](nil, 9, 2, 7)
	if beyond.Page != 3 || !beyond.Last || beyond.HasNext {
		t.Errorf("expected page 9 of 4 clamped to last page 3, got %+v", beyond)
	}
}

func TestPageValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		page Page[int]
		want string
	}{
		{"first on page 1", Page[int]{Page: 1, TotalPages: 3, First: true, HasPrevious: false, HasNext: true}, "first"},
		{"last mismatch", Page[int]{Page: 0, TotalPages: 3, First: true, Last: true}, "last"},
		{"hasNext with last", Page[int]{Page: 2, TotalPages: 3, Last: true, HasNext: true, HasPrevious: true}, "hasNext"},
		{"hasPrevious on first", Page[int]{Page: 0, TotalPages: 1, First: true, Last: true, HasPrevious: true}, "hasPrevious"},
		{"oversized", Page[int]{Content: []int{1, 2, 3}, Size: 2, Page: 0, TotalPages: 1, First: true, Last: true}, "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPageDecodesBackendJSON(t *testing.T) {
	raw := `{"content":[{"id":"1","cik":"0000320193","name":"Apple Inc.","ticker":"AAPL"}],
		"page":0,"size":5,"totalElements":1,"totalPages":1,
		"first":true,"last":true,"hasNext":false,"hasPrevious":false}`
	var p Page[CompanyListItem]
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Content) != 1 || p.Content[0].Ticker != "AAPL" {
		t.Fatalf("unexpected content: %+v", p.Content)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// ── Download Job Tests ──

func TestJobStatusTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobPending, false},
		{JobInProgress, false},
		{JobCompleted, true},
		{JobFailed, true},
		{JobCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.terminal {
			t.Errorf("%s.IsTerminal() = %t, want %t", tt.status, got, tt.terminal)
		}
	}
}

func TestAnyActive(t *testing.T) {
	if AnyActive(nil) {
		t.Error("no jobs should not be active")
	}
	jobs := []DownloadJob{{ID: "a", Status: JobCompleted}, {ID: "b", Status: JobFailed}}
	if AnyActive(jobs) {
		t.Error("terminal jobs should not be active")
	}
	jobs = append(jobs, DownloadJob{ID: "c", Status: JobPending})
	if !AnyActive(jobs) {
		t.Error("expected pending job to count as active")
	}
}

// ── Export Tests ──

func TestExportRequestOmitsUnsetFields(t *testing.T) {
	req := ExportRequest{
		SearchCriteria: &FilingSearchRequest{FormType: "10-K"},
		Format:         ExportCSV,
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"searchCriteria":{"formType":"10-K"},"format":"CSV"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
