package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/seenimoa/edgardash/internal/infra"
)

// MaxHistory is the number of searches kept.
const MaxHistory = 20

const historyKey = "search-history"

// HistoryEntry is one remembered search.
type HistoryEntry struct {
	Query      string    `json:"query"`
	Kind       string    `json:"kind,omitempty"` // companies, filings, form13f, ...
	SearchedAt time.Time `json:"searchedAt"`
}

// SearchHistory is the local, most-recent-first list of searches.
// Queries are de-duplicated case-insensitively after trimming; re-running a
// search moves it to the front.
type SearchHistory struct {
	mu      sync.Mutex
	backend Backend
	entries []HistoryEntry
	now     func() time.Time
	log     *slog.Logger
}

// NewSearchHistory loads the history from b. Unreadable data is logged and
// replaced with an empty history.
func NewSearchHistory(b Backend, log *slog.Logger) (*SearchHistory, error) {
	if log == nil {
		log = infra.Discard()
	}
	h := &SearchHistory{backend: b, now: time.Now, log: log}

	data, err := b.Load(historyKey)
	switch {
	case errors.Is(err, ErrNotFound):
		return h, nil
	case err != nil:
		return nil, fmt.Errorf("loading search history: %w", err)
	}
	if err := json.Unmarshal(data, &h.entries); err != nil {
		log.Warn("discarding unreadable search history", "error", err)
		h.entries = nil
	}
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[:MaxHistory]
	}
	return h, nil
}

// Add records query at the front. Blank queries are ignored.
func (h *SearchHistory) Add(query, kind string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]HistoryEntry, 0, MaxHistory)
	next = append(next, HistoryEntry{Query: query, Kind: kind, SearchedAt: h.now()})
	for _, e := range h.entries {
		if sameQuery(e.Query, query) {
			continue
		}
		if len(next) == MaxHistory {
			break
		}
		next = append(next, e)
	}
	return h.persist(next)
}

// Entries returns a copy of the history, most recent first.
func (h *SearchHistory) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]HistoryEntry(nil), h.entries...)
}

// Queries returns the query strings, most recent first.
func (h *SearchHistory) Queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Query
	}
	return out
}

// Remove deletes query if present.
func (h *SearchHistory) Remove(query string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]HistoryEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if !sameQuery(e.Query, query) {
			next = append(next, e)
		}
	}
	if len(next) == len(h.entries) {
		return nil
	}
	return h.persist(next)
}

// Clear forgets every entry.
func (h *SearchHistory) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.backend.Delete(historyKey); err != nil {
		return err
	}
	h.entries = nil
	return nil
}

// persist saves next and installs it only if the save succeeded; h.mu must
// be held.
func (h *SearchHistory) persist(next []HistoryEntry) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}
	if err := h.backend.Save(historyKey, data); err != nil {
		return err
	}
	h.entries = next
	return nil
}

func sameQuery(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
