package transport

import (
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts backend requests by outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgardash_client_requests_total",
			Help: "Requests issued to the EDGAR backend",
		},
		[]string{"method", "path", "status"},
	)

	// requestDuration tracks backend latency as seen by the client.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edgardash_client_request_duration_seconds",
			Help:    "Latency of requests to the EDGAR backend in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

var (
	accessionSegment = regexp.MustCompile(`/\d{10}-\d{2}-\d{6}(/|$)`)
	numericSegment   = regexp.MustCompile(`/\d+(/|$)`)
	uuidSegment      = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
	hexIDSegment     = regexp.MustCompile(`/[0-9a-fA-F]{24}(/|$)`)
)

// normalizePath strips the query and replaces identifiers with placeholders
// to keep label cardinality bounded.
// /filings/accession/0000320193-24-000123 → /filings/accession/{accession}
// /companies/cik/0000320193/filings → /companies/cik/{n}/filings
func normalizePath(path string) string {
	for i := 0; i < len(path); i++ {
		if path[i] == '?' {
			path = path[:i]
			break
		}
	}
	path = accessionSegment.ReplaceAllString(path, "/{accession}$1")
	path = uuidSegment.ReplaceAllString(path, "/{id}$1")
	path = hexIDSegment.ReplaceAllString(path, "/{id}$1")
	// Run twice: adjacent numeric segments share the separating slash.
	path = numericSegment.ReplaceAllString(path, "/{n}$1")
	path = numericSegment.ReplaceAllString(path, "/{n}$1")
	return path
}

func observe(method, path, status string, elapsed time.Duration) {
	p := normalizePath(path)
	requestsTotal.WithLabelValues(method, p, status).Inc()
	requestDuration.WithLabelValues(method, p).Observe(elapsed.Seconds())
}
