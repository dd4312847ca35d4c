package transport

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a query string whose parameters keep insertion order.
// Empty values are skipped by Add so undefined filters never reach the wire.
type Query struct {
	keys   []string
	values []string
}

// NewQuery returns an empty query.
func NewQuery() *Query { return &Query{} }

// Add appends key=value unless value is empty.
func (q *Query) Add(key, value string) *Query {
	if value == "" {
		return q
	}
	return q.Set(key, value)
}

// Set appends key=value unconditionally.
func (q *Query) Set(key, value string) *Query {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
	return q
}

// AddInt always appends an integer parameter.
func (q *Query) AddInt(key string, n int) *Query {
	return q.Set(key, strconv.Itoa(n))
}

// AddIntIfSet appends an integer parameter only when it is non-zero.
func (q *Query) AddIntIfSet(key string, n int) *Query {
	if n == 0 {
		return q
	}
	return q.AddInt(key, n)
}

// AddFloatIfSet appends a float parameter only when it is non-zero.
func (q *Query) AddFloatIfSet(key string, f float64) *Query {
	if f == 0 {
		return q
	}
	return q.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
}

// AddList appends key=a,b,c when list is non-empty.
func (q *Query) AddList(key string, list []string) *Query {
	if len(list) == 0 {
		return q
	}
	return q.Set(key, strings.Join(list, ","))
}

// Len returns the number of parameters.
func (q *Query) Len() int { return len(q.keys) }

// Encode renders the parameters in insertion order without a leading "?".
func (q *Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}

// With appends the encoded query to path, if there is one.
func (q *Query) With(path string) string {
	if q.Len() == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Segment escapes a single path segment such as a CIK or accession number.
func Segment(s string) string {
	return url.PathEscape(s)
}
