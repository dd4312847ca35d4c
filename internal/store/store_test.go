package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	sqlite, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Backend{
		"file":   file,
		"sqlite": sqlite,
		"memory": NewMemoryBackend(),
	}
}

func TestBackendContract(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := b.Load("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
			if err := b.Save("k", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := b.Save("k", []byte(`{"a":2}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := b.Load("k")
			if err != nil || string(got) != `{"a":2}` {
				t.Errorf("expected overwritten value, got %s (%v)", got, err)
			}
			if err := b.Delete("k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := b.Delete("k"); err != nil {
				t.Errorf("expected deleting a missing key to succeed, got %v", err)
			}
			if _, err := b.Load("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{"", "file", "SQLite", "memory"} {
		b, err := OpenBackend(kind, dir)
		if err != nil {
			t.Errorf("OpenBackend(%q): %v", kind, err)
			continue
		}
		b.Close()
	}
	if _, err := OpenBackend("redis", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	b1, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b1.Save("k", []byte("v")); err != nil {
		t.Fatalf("save: %v", err)
	}
	b1.Close()

	b2, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()
	if got, err := b2.Load("k"); err != nil || string(got) != "v" {
		t.Errorf("expected v, got %s (%v)", got, err)
	}
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, _ := NewFileBackend(dir)
	for i := 0; i < 3; i++ {
		if err := b.Save("prefs", []byte(fmt.Sprint(i))); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "prefs.json" {
		t.Errorf("expected only prefs.json, got %v", entries)
	}
}

// ---- Search history ----

func TestSearchHistoryCap(t *testing.T) {
	h, err := NewSearchHistory(NewMemoryBackend(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 1; i <= 21; i++ {
		if err := h.Add(fmt.Sprintf("query %d", i), "filings"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	q := h.Queries()
	if len(q) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(q))
	}
	if q[0] != "query 21" {
		t.Errorf("expected most recent first, got %s", q[0])
	}
	if q[len(q)-1] != "query 2" {
		t.Errorf("expected oldest evicted, last is %s", q[len(q)-1])
	}
}

func TestSearchHistoryDedup(t *testing.T) {
	h, _ := NewSearchHistory(NewMemoryBackend(), nil)
	h.Add("Apple", "companies")
	h.Add("Microsoft", "companies")
	h.Add("  apple ", "companies")
	h.Add("   ", "companies")

	q := h.Queries()
	if len(q) != 2 || q[0] != "apple" || q[1] != "Microsoft" {
		t.Errorf("expected [apple Microsoft], got %v", q)
	}
}

func TestSearchHistoryPersists(t *testing.T) {
	b, _ := NewFileBackend(t.TempDir())
	h, _ := NewSearchHistory(b, nil)
	fixed := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }
	h.Add("10-K", "filings")
	h.Add("Berkshire", "form13f")

	reloaded, err := NewSearchHistory(b, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	e := reloaded.Entries()
	if len(e) != 2 || e[0].Query != "Berkshire" || e[0].Kind != "form13f" || !e[0].SearchedAt.Equal(fixed) {
		t.Errorf("unexpected reloaded entries %+v", e)
	}

	if err := reloaded.Remove("10-k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := reloaded.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	again, _ := NewSearchHistory(b, nil)
	if len(again.Entries()) != 0 {
		t.Errorf("expected empty history after Clear, got %v", again.Entries())
	}
}

func TestSearchHistoryUnreadableStartsEmpty(t *testing.T) {
	b := NewMemoryBackend()
	b.Save(historyKey, []byte("not json"))
	h, err := NewSearchHistory(b, nil)
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if len(h.Entries()) != 0 {
		t.Errorf("expected empty history, got %v", h.Entries())
	}
}

// ---- Preferences ----

func TestPreferencesDefaults(t *testing.T) {
	s, err := NewPreferenceStore(NewMemoryBackend(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := s.Get()
	if p.RefreshIntervalSec != 30 || p.DarkMode || !p.Notifications || p.DefaultPageSize != 20 {
		t.Errorf("unexpected defaults %+v", p)
	}
}

func TestPreferencesUpdatePersists(t *testing.T) {
	dir := t.TempDir()
	b, _ := NewFileBackend(dir)
	s, _ := NewPreferenceStore(b, nil)

	p, err := s.Update(func(p *Preferences) {
		p.DarkMode = true
		p.AutoRefresh = true
		p.RefreshIntervalSec = 60
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !p.DarkMode || p.RefreshIntervalSec != 60 {
		t.Errorf("unexpected result %+v", p)
	}
	if _, err := os.Stat(filepath.Join(dir, "preferences.json")); err != nil {
		t.Errorf("expected preferences.json: %v", err)
	}

	reloaded, _ := NewPreferenceStore(b, nil)
	if got := reloaded.Get(); got != p {
		t.Errorf("expected %+v after reload, got %+v", p, got)
	}

	if _, err := s.Update(func(p *Preferences) { p.RefreshIntervalSec = 1 }); err == nil {
		t.Error("expected validation error")
	}
	if s.Get().RefreshIntervalSec != 60 {
		t.Error("expected rejected update to leave preferences unchanged")
	}

	def, err := s.Reset()
	if err != nil || def != DefaultPreferences() || s.Get() != DefaultPreferences() {
		t.Errorf("expected defaults after reset, got %+v (%v)", def, err)
	}
}

func TestPreferencesPartialDocumentKeepsDefaults(t *testing.T) {
	b := NewMemoryBackend()
	b.Save(preferencesKey, []byte(`{"darkMode":true}`))
	s, _ := NewPreferenceStore(b, nil)
	p := s.Get()
	if !p.DarkMode || p.RefreshIntervalSec != 30 {
		t.Errorf("expected defaults for missing fields, got %+v", p)
	}
}
