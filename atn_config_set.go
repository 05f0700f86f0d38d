// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package lexatn

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ATNConfigSet holds the working set of LexerATNConfigs built up during one
// closure/reach step. Membership uses full (state, alt, context) equality;
// inserting a config whose (state, alt, context) key already exists merges
// the new context into the existing entry's via PredictionContext.Merge
// instead of adding a duplicate (spec.md §3).
//
// Once interned into a DfaState the set is frozen (SetReadOnly(true)); any
// further Add/Clear is a ReadOnlyMutation bug.
type ATNConfigSet struct {
	configs []*LexerATNConfig
	lookup  map[int][]*LexerATNConfig

	// HasSemanticContext records that closure evaluated at least one
	// predicate while building this set (spec.md §3).
	HasSemanticContext bool

	readOnly bool
	cache    *mergeCache
}

// NewATNConfigSet returns an empty, mutable config set. cache is the merge
// cache used when a newly added config's context must be merged with an
// existing one.
func NewATNConfigSet(cache *mergeCache) *ATNConfigSet {
	return &ATNConfigSet{
		lookup: make(map[int][]*LexerATNConfig),
		cache:  cache,
	}
}

// SetReadOnly freezes the set; Add/Clear panic afterward.
func (s *ATNConfigSet) SetReadOnly(ro bool) { s.readOnly = ro }
func (s *ATNConfigSet) IsReadOnly() bool    { return s.readOnly }

// Configs exposes the ordered member list.
func (s *ATNConfigSet) Configs() []*LexerATNConfig { return s.configs }

// Len reports the number of distinct (state, alt, context) members.
func (s *ATNConfigSet) Len() int { return len(s.configs) }

// Add inserts c, merging contexts with an existing entry that shares c's
// (state, alt, context) key, per spec.md §3. Returns true if a new distinct
// member was appended, false if merged into an existing one.
func (s *ATNConfigSet) Add(c *LexerATNConfig) bool {
	if s.readOnly {
		readOnlyMutation()
	}

	key := c.hashFullContext()
	for _, existing := range s.lookup[key] {
		if existing.equalsFullContext(c) {
			merged := Merge(existing.Context, c.Context, true, s.cache)
			existing.Context = merged
			return false
		}
	}

	s.configs = append(s.configs, c)
	s.lookup[key] = append(s.lookup[key], c)
	return true
}

// Clear empties the set back to its initial state.
func (s *ATNConfigSet) Clear() {
	if s.readOnly {
		readOnlyMutation()
	}
	s.configs = nil
	s.lookup = make(map[int][]*LexerATNConfig)
	s.HasSemanticContext = false
}

// ContainsDfaStateKey reports whether any member shares c's (state, alt) key
// under the context-blind equality used to compare across DFA states
// (spec.md §3).
func (s *ATNConfigSet) ContainsDfaStateKey(c *LexerATNConfig) bool {
	for _, existing := range s.configs {
		if existing.equalsDfaStateKey(c) {
			return true
		}
	}
	return false
}

// dfaStateHash produces a hash over the context-blind (state, alt) keys of
// every member, order-independent, so two config sets that differ only in
// member order or in context hash identically when used as a DfaState key
// (spec.md §4.4 "DFA-state equality").
func (s *ATNConfigSet) dfaStateHash() int {
	var sum int64
	for _, c := range s.configs {
		sum += int64(uint32(c.hashDfaStateKey()))
	}
	return int(sum)
}

// dfaStateEquals compares two sets using context-blind (state, alt) member
// equality, ignoring order.
func (s *ATNConfigSet) dfaStateEquals(o *ATNConfigSet) bool {
	if len(s.configs) != len(o.configs) {
		return false
	}
	for _, c := range s.configs {
		if !o.ContainsDfaStateKey(c) {
			return false
		}
	}
	return true
}

// String renders the set's lookup buckets in ascending key order, e.g. for
// comparing two closures in a test failure message. lookup is keyed by the
// same hashFullContext value a config hashes to, so iterating its keys in
// sorted order gives a stable, reproducible dump despite Go's randomized map
// iteration order.
func (s *ATNConfigSet) String() string {
	keys := maps.Keys(s.lookup)
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, key := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		for j, c := range s.lookup[key] {
			if j > 0 {
				b.WriteString("|")
			}
			fmt.Fprintf(&b, "%d:s%d,a%d", key, c.State.GetStateNumber(), c.Alt)
		}
	}
	b.WriteString("}")
	return b.String()
}
