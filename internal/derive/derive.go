// Package derive holds the pure projection functions shared by every
// page: filtering, sorting, searching, aggregate stats, and the display
// cleanup for backend category labels. Nothing here mutates its input or
// keeps state; every result is recomputable from the canonical slice.
package derive

import "sort"

// Filter keeps the records matching keep.
func Filter[T any](keep func(T) bool) func([]T) []T {
	return func(items []T) []T {
		out := items[:0:0]
		for _, it := range items {
			if keep(it) {
				out = append(out, it)
			}
		}
		return out
	}
}

// SortBy orders records by less. The sort is stable so equal records
// keep their relative order across repeated derivations.
func SortBy[T any](less func(a, b T) bool) func([]T) []T {
	return func(items []T) []T {
		out := append([]T(nil), items...)
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
		return out
	}
}

// Limit truncates a view to at most n records.
func Limit[T any](n int) func([]T) []T {
	return func(items []T) []T {
		if n < 0 || n >= len(items) {
			return items
		}
		return items[:n]
	}
}
