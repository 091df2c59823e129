// Package extract turns a raw field byte range from internal/token into a
// typed value (spec.md §4.D): integers, floats, booleans, and the NA
// membership test the promotion ladder in internal/column consults before
// trying any of those parses.
package extract

import "github.com/tablon/tablon/internal/common"

// StringSet is a fast-reject membership test over a small, fixed
// collection of marker strings (NA tokens, true/false tokens). It leans on
// the teacher's common.BloomFilter the way the teacher's own indexer uses
// it: a bloom probe answers "definitely absent" in O(1), and only a
// possible hit falls through to the exact map, so the common case (an
// ordinary data value that is not a marker) never touches the map at all.
type StringSet struct {
	bloom *common.BloomFilter
	exact map[string]struct{}
}

// NewStringSet builds a StringSet from a small list of marker values.
func NewStringSet(values []string) StringSet {
	bf := common.NewBloomFilter(len(values)+1, 0.01)
	exact := make(map[string]struct{}, len(values))
	for _, v := range values {
		bf.Add(v)
		exact[v] = struct{}{}
	}
	return StringSet{bloom: bf, exact: exact}
}

// Contains reports whether v is one of the set's marker strings.
func (s StringSet) Contains(v string) bool {
	if s.bloom == nil || !s.bloom.MightContain(v) {
		return false
	}
	_, ok := s.exact[v]
	return ok
}
