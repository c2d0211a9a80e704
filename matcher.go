package glyphmatch

import (
	"math"
	"math/rand"
	"time"
)

// Scoring weights for the glyph distance. Edge terms dominate so stroke
// shape outranks raw brightness: without the 4.0 edge weight a solid
// block wins any bright cell purely on density. The constants were tuned
// visually; changing them requires revalidating rendered output.
const (
	quadrantWeight = 1.5
	edgeWeight     = 4.0
)

// Candidate pool tolerance: every glyph scoring within
// best + best*poolSlack + poolFloor of the best score is a candidate.
// The floor keeps the pool from collapsing to a single glyph when the
// best score approaches zero.
const (
	poolSlack = 0.15
	poolFloor = 0.02
)

// Matcher selects glyph indices for cell signatures. Glyphs scoring
// within tolerance of the best match form a candidate pool and one is
// drawn uniformly at random, so flat regions do not collapse into a
// single repeated glyph. Selection is therefore non-deterministic unless
// the Matcher is constructed with a fixed rand.Source.
//
// A Matcher is not safe for concurrent use; give each goroutine its own.
type Matcher struct {
	rng    *rand.Rand
	scores []float64
	pool   []int
}

// NewMatcher creates a Matcher drawing from src. A nil src gets a
// time-seeded source.
func NewMatcher(src rand.Source) *Matcher {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Matcher{rng: rand.New(src)}
}

// Score returns the weighted distance between a glyph signature and a
// cell signature. Lower is closer.
func Score(g, cell Signature) float64 {
	quadDiff := math.Abs(g.Quadrants[quadTL]-cell.Quadrants[quadTL]) +
		math.Abs(g.Quadrants[quadTR]-cell.Quadrants[quadTR]) +
		math.Abs(g.Quadrants[quadBL]-cell.Quadrants[quadBL]) +
		math.Abs(g.Quadrants[quadBR]-cell.Quadrants[quadBR])
	edgeDiff := math.Abs(g.HorizEdge-cell.HorizEdge) +
		math.Abs(g.VertEdge-cell.VertEdge) +
		math.Abs(g.Diag1Edge-cell.Diag1Edge) +
		math.Abs(g.Diag2Edge-cell.Diag2Edge)
	return math.Abs(g.Density-cell.Density) +
		quadrantWeight*quadDiff +
		edgeWeight*edgeDiff
}

// Select returns the index of the glyph that best matches cell, chosen
// uniformly at random from the pool of glyphs within tolerance of the
// best score. The pool always contains at least the best-scoring glyph,
// so the returned index is always valid for a non-empty glyph list.
func (m *Matcher) Select(cell Signature, glyphs []GlyphSignature) int {
	if len(glyphs) == 0 {
		return 0
	}

	if cap(m.scores) < len(glyphs) {
		m.scores = make([]float64, len(glyphs))
	}
	scores := m.scores[:len(glyphs)]

	bestScore := math.MaxFloat64
	for i := range glyphs {
		s := Score(glyphs[i].Signature, cell)
		scores[i] = s
		if s < bestScore {
			bestScore = s
		}
	}

	limit := bestScore + bestScore*poolSlack + poolFloor
	pool := m.pool[:0]
	for i, s := range scores {
		if s <= limit {
			pool = append(pool, i)
		}
	}
	m.pool = pool

	if len(pool) == 0 {
		// Unreachable: the best scorer always passes its own limit.
		return 0
	}
	return pool[m.rng.Intn(len(pool))]
}
