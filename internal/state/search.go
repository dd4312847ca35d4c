package state

import (
	"context"
	"sync"

	"github.com/seenimoa/edgardash/pkg/models"
)

// ListState is the observable state of a paginated search.
type ListState[T any] struct {
	Results       []T
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
	Loading       bool
	Error         string
}

// PageFetcher fetches one page of a search.
type PageFetcher[T any] func(ctx context.Context, page, size int) (models.Page[T], error)

// Search is a container for paginated results. Only one search is active at
// a time: each run replaces the results of the previous one and becomes the
// search that the paging helpers re-run.
type Search[T any] struct {
	cell[ListState[T]]
	defaultSize int

	lastMu sync.Mutex
	last   PageFetcher[T]
}

// NewSearch returns an empty search using defaultSize when a caller passes
// no page size.
func NewSearch[T any](defaultSize int) *Search[T] {
	return &Search[T]{defaultSize: defaultSize}
}

// State returns the current snapshot.
func (s *Search[T]) State() ListState[T] { return s.get() }

// Subscribe registers fn for every state change.
func (s *Search[T]) Subscribe(fn func(ListState[T])) (unsubscribe func()) {
	return s.subscribe(fn)
}

// Run executes fetch for page and size and makes it the active search.
func (s *Search[T]) Run(ctx context.Context, page, size int, fetch PageFetcher[T]) ListState[T] {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = s.defaultSize
	}

	s.lastMu.Lock()
	s.last = fetch
	s.lastMu.Unlock()

	token := s.begin(func(st *ListState[T]) {
		st.Loading = true
		st.Error = ""
	})

	result, err := fetch(ctx, page, size)

	snap, _ := s.commit(token, func(st *ListState[T]) {
		st.Loading = false
		switch {
		case err == nil:
			st.Results = result.Content
			st.TotalElements = result.TotalElements
			st.TotalPages = result.TotalPages
			st.Page = result.Page
			st.Size = result.Size
		case skipped(err):
			*st = ListState[T]{}
		default:
			st.Error = err.Error()
		}
	})
	return snap
}

// Refresh re-runs the active search on its current page.
func (s *Search[T]) Refresh(ctx context.Context) ListState[T] {
	st := s.get()
	return s.GoToPage(ctx, st.Page)
}

// GoToPage re-runs the active search on page. Out-of-range pages and calls
// before any search are ignored.
func (s *Search[T]) GoToPage(ctx context.Context, page int) ListState[T] {
	s.lastMu.Lock()
	fetch := s.last
	s.lastMu.Unlock()

	st := s.get()
	if fetch == nil || page < 0 || (st.TotalPages > 0 && page >= st.TotalPages) {
		return st
	}
	return s.Run(ctx, page, st.Size, fetch)
}

// NextPage moves forward one page if there is one.
func (s *Search[T]) NextPage(ctx context.Context) ListState[T] {
	st := s.get()
	if st.Page+1 >= st.TotalPages {
		return st
	}
	return s.GoToPage(ctx, st.Page+1)
}

// PrevPage moves back one page if there is one.
func (s *Search[T]) PrevPage(ctx context.Context) ListState[T] {
	st := s.get()
	if st.Page == 0 {
		return st
	}
	return s.GoToPage(ctx, st.Page-1)
}

// Clear forgets the active search and its results.
func (s *Search[T]) Clear() {
	s.lastMu.Lock()
	s.last = nil
	s.lastMu.Unlock()
	s.reset(ListState[T]{})
}
