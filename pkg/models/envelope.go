// Package models defines the data shapes exchanged with the EDGAR backend.
// They mirror the backend DTOs one-to-one; nothing here derives or validates
// domain data beyond the pagination invariants.
package models

import "fmt"

// Envelope is the wrapper every JSON response from the backend carries.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path,omitempty"`
}

// Page is a single page of a paginated collection. Page numbers are 0-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewPage builds a page whose flags are consistent with page, size and total.
// An empty collection yields a single page that is both first and last, and
// an out-of-range page is clamped to the last one.
func NewPage[T any](content []T, page, size int, total int64) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if content == nil {
		content = []T{}
	}
	page = max(0, min(page, totalPages-1))
	first := page == 0
	last := totalPages == 0 || page == totalPages-1
	return Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         first,
		Last:          last,
		HasNext:       !last,
		HasPrevious:   !first,
	}
}

// Validate checks the pagination invariants the backend promises.
func (p Page[T]) Validate() error {
	if p.First != (p.Page == 0) {
		return fmt.Errorf("page %d: first=%t", p.Page, p.First)
	}
	if p.TotalPages > 0 && p.Last != (p.Page == p.TotalPages-1) {
		return fmt.Errorf("page %d of %d: last=%t", p.Page, p.TotalPages, p.Last)
	}
	if p.HasNext != !p.Last {
		return fmt.Errorf("page %d: hasNext=%t but last=%t", p.Page, p.HasNext, p.Last)
	}
	if p.HasPrevious != !p.First {
		return fmt.Errorf("page %d: hasPrevious=%t but first=%t", p.Page, p.HasPrevious, p.First)
	}
	if p.Size > 0 && len(p.Content) > p.Size {
		return fmt.Errorf("page %d: %d items exceed size %d", p.Page, len(p.Content), p.Size)
	}
	return nil
}

// Empty reports whether the page holds no items.
func (p Page[T]) Empty() bool { return len(p.Content) == 0 }
