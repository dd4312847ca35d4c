package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type company struct {
	CIK  string `json:"cik"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/api", Timeout: 2 * time.Second, UserAgent: "edgardash-test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	for _, base := range []string{"", "/api", "localhost:8080"} {
		if _, err := New(Options{BaseURL: base}); err == nil {
			t.Errorf("expected error for base URL %q", base)
		}
	}
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/companies/cik/0000320193" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeBody(w, http.StatusOK, `{"success":true,"message":"OK","data":{"cik":"0000320193","name":"Apple Inc."},"timestamp":"2026-01-01T00:00:00Z"}`)
	})

	got, err := Get[company](context.Background(), c, "/companies/cik/0000320193")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CIK != "0000320193" || got.Name != "Apple Inc." {
		t.Errorf("expected unwrapped company, got %+v", got)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"cik":"320193"}` {
			t.Errorf("unexpected body %s", body)
		}
		writeBody(w, http.StatusOK, `{"success":true,"message":"","data":["a","b"],"timestamp":""}`)
	})

	got, err := Post[[]string](context.Background(), c, "/downloads/submissions", map[string]string{"cik": "320193"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
}

func TestDefaultHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "edgardash-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected accept %q", r.Header.Get("Accept"))
		}
		if len(r.Header.Get("X-Request-ID")) != 36 {
			t.Errorf("expected uuid request id, got %q", r.Header.Get("X-Request-ID"))
		}
		if r.Header.Get("Content-Type") != "" {
			t.Error("GET should not carry a content type")
		}
		writeBody(w, http.StatusOK, `{"success":true,"data":null}`)
	})
	if _, err := Get[*company](context.Background(), c, "/settings"); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestErrorUsesEnvelopeMessageRegardlessOfStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, status, `{"success":false,"message":"X","data":null,"timestamp":""}`)
		})
		_, err := Get[company](context.Background(), c, "/companies/1")
		if err == nil {
			t.Fatalf("status %d: expected error", status)
		}
		if err.Error() != "X" {
			t.Errorf("status %d: expected message X, got %q", status, err.Error())
		}
		if StatusCode(err) != status {
			t.Errorf("expected status %d, got %d", status, StatusCode(err))
		}
	}
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})
	_, err := Get[company](context.Background(), c, "/companies/1")
	if err == nil || err.Error() != "Request failed with status code 502" {
		t.Fatalf("expected status fallback message, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusNotFound, `{"success":false,"message":"Company not found"}`)
	})
	_, err := Get[company](context.Background(), c, "/companies/cik/1")
	if !IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	var te *Error
	if !errors.As(err, &te) || te.Path != "/companies/cik/1" || te.Method != http.MethodGet {
		t.Errorf("expected *Error with request details, got %#v", err)
	}
}

func TestSuccessFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"success":false,"message":"Job already finished","data":null}`)
	})
	_, err := Delete[any](context.Background(), c, "/downloads/jobs/1")
	if err == nil || err.Error() != "Job already finished" {
		t.Fatalf("expected envelope failure, got %v", err)
	}

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"success":false}`)
	})
	_, err = Get[any](context.Background(), c, "/settings")
	if err == nil || err.Error() != fallbackMessage {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestMalformedEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `not json`)
	})
	_, err := Get[company](context.Background(), c, "/companies/1")
	if err == nil || !strings.HasPrefix(err.Error(), "invalid response envelope") {
		t.Fatalf("expected envelope error, got %v", err)
	}
}

func TestEmptySuccessBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"no content", http.StatusNoContent},
		{"empty ok", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			got, err := Delete[*company](context.Background(), c, "/downloads/jobs/job-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != nil {
				t.Errorf("expected nil data, got %+v", got)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base + "/api"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = Get[company](context.Background(), c, "/companies")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
	if StatusCode(err) != 0 {
		t.Errorf("network errors carry no status, got %d", StatusCode(err))
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/api", Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = Get[company](context.Background(), c, "/slow")
	if err == nil || err.Error() != "timeout of 50ms exceeded" {
		t.Fatalf("expected timeout message, got %v", err)
	}
}

func TestRateLimitedRequestHonorsContext(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeBody(w, http.StatusOK, `{"success":true,"message":"OK","data":{"cik":"1"}}`)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/api", MaxRPS: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := Get[company](context.Background(), c, "/companies"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := Get[company](ctx, c, "/companies"); err == nil {
		t.Fatal("expected second request to wait past the deadline")
	}
	if calls != 1 {
		t.Errorf("expected 1 request to reach the server, got %d", calls)
	}
}

func TestDownloadFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export/csv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="filings.csv"`)
		io.WriteString(w, "cik,formType\n0000320193,10-K\n")
	})

	blob, err := c.DownloadFile(context.Background(), "/export/csv", map[string]string{"format": "CSV"})
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	if !strings.HasPrefix(string(blob.Data), "cik,formType") {
		t.Errorf("unexpected payload %q", blob.Data)
	}
	if blob.ContentType != "text/csv" || blob.Filename != "filings.csv" {
		t.Errorf("unexpected metadata %+v", blob)
	}
}

func TestDownloadFileError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusBadRequest, `{"success":false,"message":"No filings match the criteria"}`)
	})
	_, err := c.DownloadFile(context.Background(), "/export/json", nil)
	if err == nil || err.Error() != "No filings match the criteria" {
		t.Fatalf("expected envelope message, got %v", err)
	}
}

func TestRequestMetrics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"success":true,"data":1}`)
	})
	counter := requestsTotal.WithLabelValues(http.MethodGet, "/filings/accession/{accession}", "200")
	before := testutil.ToFloat64(counter)

	if _, err := Get[int](context.Background(), c, "/filings/accession/0000320193-24-000123"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("expected counter to increase by 1, got %v", got)
	}
}
