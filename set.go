package profile

import (
	"sort"
)

// -------------------------------------------------------------------------
// String Set

// StringSet is a set of string values, used for column and field names.
type StringSet map[string]struct{}

func NewStringSet() StringSet {
	return make(StringSet)
}

// Add adds x to s.
func (s StringSet) Add(x string) {
	s[x] = struct{}{}
}

// Contains reports membership of x in s.
func (s StringSet) Contains(x string) bool {
	_, ok := s[x]
	return ok
}

// Elements returns the sorted elements of s.
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Strings(elems)
	return elems
}
