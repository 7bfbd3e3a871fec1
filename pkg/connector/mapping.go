package connector

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Pair is one entry of a [Mapping].
type Pair struct {
	Old   string
	Index int
}

// Mapping is the ordered old id to new index table produced by a traversal.
//
// Old ids are distinct. A valid mapping numbers its entries contiguously
// from its base in insertion order; [Mapping.Validate] checks that.
// The zero value is an empty mapping.
type Mapping struct {
	pairs []Pair
	byOld map[string]int
}

// Add appends a pair. It rejects empty and repeated old ids.
func (m *Mapping) Add(old string, index int) error {
	if old == "" {
		return fmt.Errorf("mapping: empty identifier for index %d", index)
	}
	if _, dup := m.byOld[old]; dup {
		return fmt.Errorf("mapping: %q already mapped", old)
	}
	if m.byOld == nil {
		m.byOld = make(map[string]int)
	}
	m.byOld[old] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Old: old, Index: index})
	return nil
}

// Lookup returns the index assigned to old.
func (m *Mapping) Lookup(old string) (int, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.byOld[old]
	if !ok {
		return 0, false
	}
	return m.pairs[i].Index, true
}

// Len returns the number of pairs.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of the pairs in insertion order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// All iterates the pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		if m == nil {
			return
		}
		for _, p := range m.pairs {
			if !yield(p.Old, p.Index) {
				return
			}
		}
	}
}

// Validate checks that indices run base, base+1, ... without gaps or
// repeats. Base must be 0 or 1.
func (m *Mapping) Validate(base int) error {
	if base != 0 && base != 1 {
		return fmt.Errorf("mapping: base must be 0 or 1, got %d", base)
	}
	for i, p := range m.Pairs() {
		if want := base + i; p.Index != want {
			return fmt.Errorf("mapping: %q has index %d, want %d", p.Old, p.Index, want)
		}
	}
	return nil
}

// String renders the mapping as [(old,index), ...].
func (m *Mapping) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range m.Pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(" + p.Old + "," + strconv.Itoa(p.Index) + ")")
	}
	b.WriteByte(']')
	return b.String()
}
