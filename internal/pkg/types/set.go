package types

import (
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set implementation for comparable types.
//
// It provides efficient membership tests, insertion, and deletion using a
// map[T]struct{} internally. This type is mutable: methods like Add and
// Delete modify the set in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set and optionally inserts the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T])
	for _, d := range data {
		set[d] = struct{}{}
	}
	return set
}

// Add inserts one or more elements into the set, modifying it in place.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes one or more elements from the set, modifying it in place.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Contains reports whether the given element is a member of the set.
func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of distinct elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// ToIter returns an iterator over all elements in the set, for use with
// range-based iteration from the "iter" package.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// ToSlice returns a slice containing all elements in the set.
// The order of elements is not guaranteed.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(s.ToIter())
}
