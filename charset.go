package glyphmatch

import "fmt"

// CharacterSet is an ordered, deduplicated sequence of glyphs. Order is
// significant: every index into the set is meaningful downstream (atlas
// column, match result, shader uniform), so two sets with the same runes
// in a different order are different configurations.
type CharacterSet struct {
	runes []rune
}

// NewCharacterSet builds a CharacterSet from the runes of s, preserving
// first-occurrence order and dropping duplicates. An empty set is a
// configuration error.
func NewCharacterSet(s string) (*CharacterSet, error) {
	seen := make(map[rune]bool)
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		runes = append(runes, r)
	}
	if len(runes) == 0 {
		return nil, fmt.Errorf("character set is empty")
	}
	return &CharacterSet{runes: runes}, nil
}

// Len returns the number of glyphs in the set.
func (cs *CharacterSet) Len() int {
	return len(cs.runes)
}

// Rune returns the glyph at index i. Panics if i is out of range, like a
// slice index would.
func (cs *CharacterSet) Rune(i int) rune {
	return cs.runes[i]
}

// Runes returns a copy of the glyph sequence in index order.
func (cs *CharacterSet) Runes() []rune {
	out := make([]rune, len(cs.runes))
	copy(out, cs.runes)
	return out
}

// String returns the set as a string in index order.
func (cs *CharacterSet) String() string {
	return string(cs.runes)
}

// Equal reports whether two sets contain the same glyphs in the same
// order.
func (cs *CharacterSet) Equal(other *CharacterSet) bool {
	if other == nil || len(cs.runes) != len(other.runes) {
		return false
	}
	for i, r := range cs.runes {
		if other.runes[i] != r {
			return false
		}
	}
	return true
}
