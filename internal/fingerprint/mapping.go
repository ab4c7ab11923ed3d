package fingerprint

import "fmt"

// Pair is a single old→new base name rename.
type Pair struct {
	Old string
	New string
}

// Mapping is an insertion-ordered set of renames with unique old names.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Add records old→new. Adding an old name twice is an error.
func (m *Mapping) Add(oldName, newName string) error {
	if _, ok := m.index[oldName]; ok {
		return fmt.Errorf("duplicate mapping for %s", oldName)
	}
	m.index[oldName] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Old: oldName, New: newName})
	return nil
}

// Get returns the new name recorded for old.
func (m *Mapping) Get(oldName string) (string, bool) {
	i, ok := m.index[oldName]
	if !ok {
		return "", false
	}
	return m.pairs[i].New, true
}

// Len returns the number of renames.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns the renames in insertion order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}
