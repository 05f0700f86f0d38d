// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// searchFrom returns the first index in intervals satisfying f, or
// len(intervals) if none does, matching sort.Search's convention for an
// insertion point over a slice that's sorted with respect to f.
func searchFrom(intervals []Interval, f func(Interval) bool) int {
	if idx := slices.IndexFunc(intervals, f); idx >= 0 {
		return idx
	}
	return len(intervals)
}

// Interval is a half-open range [Start, Stop) of code points or token types.
type Interval struct {
	Start int
	Stop  int
}

// IntervalSet is an ordered, disjoint collection of half-open intervals. It
// backs both the Set/NotSet transition labels (ranges of code points) and the
// expected-token sets surfaced in diagnostics.
//
// Once ReadOnly is set, AddRange/AddOne/addSet/removeOne all panic; this
// mirrors the ReadOnlyMutation failure mode in spec.md §7 and protects
// interval sets that have been shared into a frozen DfaState or ATN.
type IntervalSet struct {
	intervals []Interval
	ReadOnly  bool
}

// NewIntervalSet returns an empty, mutable interval set.
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{}
}

// NewIntervalSetFromRange returns a set containing the single interval
// [start, stop].  lo/hi are inclusive, matching the Range transition's
// [lo,hi] encoding; internally it is stored half-open as [lo, hi+1).
func NewIntervalSetFromRange(lo, hi int) *IntervalSet {
	s := NewIntervalSet()
	s.AddRange(lo, hi)
	return s
}

func (s *IntervalSet) assertMutable() {
	if s.ReadOnly {
		panic("lexatn: attempt to mutate a read-only IntervalSet")
	}
}

// AddOne adds a single value, inclusive.
func (s *IntervalSet) AddOne(v int) {
	s.AddRange(v, v)
}

// AddRange adds the inclusive range [lo, hi], merging with any overlapping
// or adjacent existing interval and keeping the set sorted and coalesced.
func (s *IntervalSet) AddRange(lo, hi int) {
	s.assertMutable()
	if hi < lo {
		return
	}
	iv := Interval{Start: lo, Stop: hi + 1}

	idx := searchFrom(s.intervals, func(x Interval) bool { return x.Stop >= iv.Start })

	insertAt := idx
	for idx < len(s.intervals) && s.intervals[idx].Start <= iv.Stop {
		if s.intervals[idx].Start < iv.Start {
			iv.Start = s.intervals[idx].Start
		}
		if s.intervals[idx].Stop > iv.Stop {
			iv.Stop = s.intervals[idx].Stop
		}
		idx++
	}

	merged := make([]Interval, 0, len(s.intervals)-(idx-insertAt)+1)
	merged = append(merged, s.intervals[:insertAt]...)
	merged = append(merged, iv)
	merged = append(merged, s.intervals[idx:]...)
	s.intervals = merged
}

// addSet unions another set's intervals into this one.
func (s *IntervalSet) addSet(other *IntervalSet) {
	if other == nil {
		return
	}
	for _, iv := range other.intervals {
		s.AddRange(iv.Start, iv.Stop-1)
	}
}

// removeOne removes a single value, shrinking or splitting the interval that
// contains it.
func (s *IntervalSet) removeOne(v int) {
	s.assertMutable()
	for i, iv := range s.intervals {
		if v < iv.Start || v >= iv.Stop {
			continue
		}
		switch {
		case iv.Start == v && iv.Stop-1 == v:
			s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
		case iv.Start == v:
			s.intervals[i].Start = v + 1
		case iv.Stop-1 == v:
			s.intervals[i].Stop = v
		default:
			left := Interval{Start: iv.Start, Stop: v}
			right := Interval{Start: v + 1, Stop: iv.Stop}
			rest := make([]Interval, 0, len(s.intervals)+1)
			rest = append(rest, s.intervals[:i]...)
			rest = append(rest, left, right)
			rest = append(rest, s.intervals[i+1:]...)
			s.intervals = rest
		}
		return
	}
}

// Contains reports whether v falls inside any interval.
func (s *IntervalSet) Contains(v int) bool {
	idx := searchFrom(s.intervals, func(x Interval) bool { return x.Stop > v })
	return idx < len(s.intervals) && s.intervals[idx].Start <= v
}

// Len returns the total count of distinct values covered.
func (s *IntervalSet) Len() int {
	n := 0
	for _, iv := range s.intervals {
		n += iv.Stop - iv.Start
	}
	return n
}

// Intervals exposes the underlying sorted, disjoint interval slice.
func (s *IntervalSet) Intervals() []Interval {
	return s.intervals
}

// Complement returns the set of values in [lo, hi] not covered by s.
func (s *IntervalSet) Complement(lo, hi int) *IntervalSet {
	result := NewIntervalSetFromRange(lo, hi)
	for _, iv := range s.intervals {
		result.removeRange(iv.Start, iv.Stop-1)
	}
	return result
}

func (s *IntervalSet) removeRange(lo, hi int) {
	var out []Interval
	for _, iv := range s.intervals {
		if iv.Stop-1 < lo || iv.Start > hi {
			out = append(out, iv)
			continue
		}
		if iv.Start < lo {
			out = append(out, Interval{Start: iv.Start, Stop: lo})
		}
		if iv.Stop-1 > hi {
			out = append(out, Interval{Start: hi + 1, Stop: iv.Stop})
		}
	}
	s.intervals = out
}

// String renders the set's values as decimal numbers, e.g. "{48..57, 97}";
// a set holding a single interval is rendered without braces, e.g. "97".
func (s *IntervalSet) String() string {
	if len(s.intervals) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(s.intervals))
	for _, iv := range s.intervals {
		if iv.Stop-iv.Start == 1 {
			parts = append(parts, fmt.Sprintf("%d", iv.Start))
		} else {
			parts = append(parts, fmt.Sprintf("%d..%d", iv.Start, iv.Stop-1))
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
