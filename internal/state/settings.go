package state

import (
	"context"
	"fmt"

	"github.com/seenimoa/edgardash/internal/edgar"
	"github.com/seenimoa/edgardash/pkg/models"
)

// SettingsSnapshot is the observable state of the backend settings.
type SettingsSnapshot struct {
	Settings models.Settings
	Loaded   bool
	Loading  bool
	Saving   bool
	Error    string
}

// SettingsState loads and saves the backend settings. Save failures are
// recorded and returned to the caller.
type SettingsState struct {
	cell[SettingsSnapshot]
	api *edgar.SettingsAPI
}

// NewSettingsState returns an unloaded container.
func NewSettingsState(api *edgar.SettingsAPI) *SettingsState {
	return &SettingsState{api: api}
}

// State returns the current snapshot.
func (s *SettingsState) State() SettingsSnapshot { return s.get() }

// Subscribe registers fn for every state change.
func (s *SettingsState) Subscribe(fn func(SettingsSnapshot)) (unsubscribe func()) {
	return s.subscribe(fn)
}

// Load fetches the settings.
func (s *SettingsState) Load(ctx context.Context) SettingsSnapshot {
	token := s.begin(func(st *SettingsSnapshot) {
		st.Loading = true
		st.Error = ""
	})
	settings, err := s.api.Get(ctx)
	snap, _ := s.commit(token, func(st *SettingsSnapshot) {
		st.Loading = false
		if err != nil {
			st.Error = err.Error()
			return
		}
		st.Settings, st.Loaded = settings, true
	})
	return snap
}

// Save stores settings on the backend.
func (s *SettingsState) Save(ctx context.Context, settings models.Settings) (models.Settings, error) {
	return s.write(ctx, func(ctx context.Context) (models.Settings, error) {
		return s.api.Update(ctx, settings)
	})
}

// Update applies fn to the current settings and saves the result, loading
// them first if needed.
func (s *SettingsState) Update(ctx context.Context, fn func(*models.Settings)) (models.Settings, error) {
	snap := s.get()
	if !snap.Loaded {
		snap = s.Load(ctx)
		if !snap.Loaded {
			return models.Settings{}, fmt.Errorf("load settings: %s", snap.Error)
		}
	}
	next := snap.Settings
	next.DefaultFormTypes = append([]string(nil), next.DefaultFormTypes...)
	fn(&next)
	return s.Save(ctx, next)
}

// Reset restores the backend defaults.
func (s *SettingsState) Reset(ctx context.Context) (models.Settings, error) {
	return s.write(ctx, s.api.Reset)
}

func (s *SettingsState) write(ctx context.Context, fn func(context.Context) (models.Settings, error)) (models.Settings, error) {
	token := s.begin(func(st *SettingsSnapshot) {
		st.Saving = true
		st.Error = ""
	})
	saved, err := fn(ctx)
	s.commit(token, func(st *SettingsSnapshot) {
		st.Saving = false
		if err != nil {
			st.Error = err.Error()
			return
		}
		st.Settings, st.Loaded = saved, true
	})
	return saved, err
}
