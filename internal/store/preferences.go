package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/seenimoa/edgardash/internal/infra"
)

const preferencesKey = "preferences"

// Preferences are the client display settings.
type Preferences struct {
	DarkMode           bool `json:"darkMode"`
	AutoRefresh        bool `json:"autoRefresh"`
	RefreshIntervalSec int  `json:"refreshIntervalSec"`
	Notifications      bool `json:"notifications"`
	DefaultPageSize    int  `json:"defaultPageSize"`
}

// DefaultPreferences are used on first run and by Reset.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode:           false,
		AutoRefresh:        false,
		RefreshIntervalSec: 30,
		Notifications:      true,
		DefaultPageSize:    20,
	}
}

// Validate rejects values the client cannot honor.
func (p Preferences) Validate() error {
	if p.RefreshIntervalSec < 5 {
		return fmt.Errorf("refresh interval must be at least 5 seconds, got %d", p.RefreshIntervalSec)
	}
	if p.DefaultPageSize < 1 || p.DefaultPageSize > 100 {
		return fmt.Errorf("default page size must be between 1 and 100, got %d", p.DefaultPageSize)
	}
	return nil
}

// PreferenceStore holds Preferences over a Backend.
type PreferenceStore struct {
	mu      sync.Mutex
	backend Backend
	prefs   Preferences
}

// NewPreferenceStore loads preferences from b, falling back to the defaults
// when nothing was saved or the saved value cannot be read.
func NewPreferenceStore(b Backend, log *slog.Logger) (*PreferenceStore, error) {
	if log == nil {
		log = infra.Discard()
	}
	s := &PreferenceStore{backend: b, prefs: DefaultPreferences()}

	data, err := b.Load(preferencesKey)
	switch {
	case errors.Is(err, ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	// Missing fields keep their defaults.
	loaded := DefaultPreferences()
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Warn("discarding unreadable preferences", "error", err)
		return s, nil
	}
	if err := loaded.Validate(); err != nil {
		log.Warn("discarding invalid preferences", "error", err)
		return s, nil
	}
	s.prefs = loaded
	return s, nil
}

// Get returns the current preferences.
func (s *PreferenceStore) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Update applies fn to a copy, validates and persists it.
func (s *PreferenceStore) Update(fn func(*Preferences)) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	if err := next.Validate(); err != nil {
		return s.prefs, err
	}
	if err := s.save(next); err != nil {
		return s.prefs, err
	}
	return next, nil
}

// Reset restores the defaults.
func (s *PreferenceStore) Reset() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := DefaultPreferences()
	if err := s.save(def); err != nil {
		return s.prefs, err
	}
	return def, nil
}

func (s *PreferenceStore) save(p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := s.backend.Save(preferencesKey, data); err != nil {
		return err
	}
	s.prefs = p
	return nil
}
