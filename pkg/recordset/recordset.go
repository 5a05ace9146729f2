package recordset

import (
	"sort"
	"strings"
	"time"
)

// Direction is a sort direction for an in-memory recordset.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Predicate is a per-record column filter.
type Predicate[T any] func(T) bool

// Filter recomputes the visible subset from the full source list: a record
// survives when the free-text term matches any of its text fields
// (case-insensitive substring; empty term matches everything) and every
// column predicate accepts it. Relative order of the source is preserved.
func Filter[T any](items []T, term string, textFields func(T) []string, preds ...Predicate[T]) []T {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]T, 0, len(items))
outer:
	for _, item := range items {
		if term != "" {
			matched := false
			for _, field := range textFields(item) {
				if strings.Contains(strings.ToLower(field), term) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		for _, pred := range preds {
			if !pred(item) {
				continue outer
			}
		}
		out = append(out, item)
	}
	return out
}

// FieldEquals builds an exact-match column predicate. An empty wanted value
// disables the filter.
func FieldEquals[T any](wanted string, field func(T) string) Predicate[T] {
	return func(item T) bool {
		if wanted == "" {
			return true
		}
		return field(item) == wanted
	}
}

// FieldContains builds a case-insensitive substring column predicate.
func FieldContains[T any](wanted string, field func(T) string) Predicate[T] {
	wanted = strings.ToLower(wanted)
	return func(item T) bool {
		if wanted == "" {
			return true
		}
		return strings.Contains(strings.ToLower(field(item)), wanted)
	}
}

// SortBy returns a stably sorted copy; the source list is left untouched.
func SortBy[T any](items []T, less func(a, b T) bool, dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// ByString compares a string column case-sensitively.
func ByString[T any](field func(T) string) func(a, b T) bool {
	return func(a, b T) bool {
		return field(a) < field(b)
	}
}

// ByTime compares a date column by its parsed timestamp.
func ByTime[T any](field func(T) time.Time) func(a, b T) bool {
	return func(a, b T) bool {
		return field(a).Before(field(b))
	}
}

// SortState tracks the active sort column and direction across clicks.
// Clicking the same column toggles ascending/descending; clicking a
// different column always starts at ascending.
type SortState struct {
	Key string
	Dir Direction
}

// Toggle applies one click on the given column and returns the new direction.
func (s *SortState) Toggle(key string) Direction {
	if s.Key == key && s.Dir == Ascending {
		s.Dir = Descending
	} else {
		s.Key = key
		s.Dir = Ascending
	}
	return s.Dir
}
