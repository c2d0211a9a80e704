package glyphmatch

import (
	"image"
	"math"
)

// Signature is a compact shape descriptor for one glyph cell or one
// image cell: overall density, per-quadrant densities, edge magnitudes
// derived from quadrant imbalance, and the brightness-weighted centroid.
// Density and quadrant values are normalized to [0,1]; edge magnitudes
// are differences of two-quadrant sums and range over [0,2].
type Signature struct {
	Density   float64
	Quadrants [4]float64 // indexed by quadTL..quadBR
	HorizEdge float64    // top vs bottom imbalance
	VertEdge  float64    // left vs right imbalance
	Diag1Edge float64    // TL+BR vs TR+BL imbalance
	Diag2Edge float64    // same terms, opposite grouping; always equals Diag1Edge
	CenterX   float64    // brightness-weighted centroid, [0,1]
	CenterY   float64
}

// GlyphSignature is a Signature plus the identity of the glyph it was
// computed from. Signatures are pure functions of (font, glyph, cell
// dimensions) and are cached until that configuration changes.
type GlyphSignature struct {
	Signature
	Char  rune
	Index int
}

// Quadrant indices within Signature.Quadrants.
const (
	quadTL = iota
	quadTR
	quadBL
	quadBR
)

// ExtractSignature computes the shape signature of the w x h region of
// gray whose top-left corner sits (x0, y0) pixels from the image's own
// top-left corner. The region must lie within the image bounds; callers
// clip trailing partial cells before calling.
//
// The computation is deterministic and stateless: one pass accumulates
// density and quadrant sums, a second pass accumulates the centroid.
// Quadrants are split at w/2 and h/2 (the left/top halves get the
// smaller share on odd dimensions) and each quadrant is averaged over
// its own pixel count, so uneven quadrant sizes are handled correctly.
// A region with zero total brightness gets the centroid defaulted to
// (0.5, 0.5).
func ExtractSignature(gray *image.Gray, x0, y0, w, h int) Signature {
	var sig Signature
	if w <= 0 || h <= 0 {
		sig.CenterX = 0.5
		sig.CenterY = 0.5
		return sig
	}

	xMid := w / 2
	yMid := h / 2

	var total float64
	var quadSum [4]float64
	var quadCount [4]int

	base := y0*gray.Stride + x0
	for y := 0; y < h; y++ {
		row := gray.Pix[base+y*gray.Stride:]
		for x := 0; x < w; x++ {
			v := float64(row[x]) / 255.0
			total += v
			q := quadTL
			if x >= xMid {
				q |= 1 // right half
			}
			if y >= yMid {
				q |= 2 // bottom half
			}
			quadSum[q] += v
			quadCount[q]++
		}
	}

	sig.Density = total / float64(w*h)
	for q := range sig.Quadrants {
		if quadCount[q] > 0 {
			sig.Quadrants[q] = quadSum[q] / float64(quadCount[q])
		}
	}

	tl := sig.Quadrants[quadTL]
	tr := sig.Quadrants[quadTR]
	bl := sig.Quadrants[quadBL]
	br := sig.Quadrants[quadBR]

	sig.HorizEdge = math.Abs((tl + tr) - (bl + br))
	sig.VertEdge = math.Abs((tl + bl) - (tr + br))
	sig.Diag1Edge = math.Abs((tl + br) - (tr + bl))
	// The opposite grouping of the same terms. Stored as an unsigned
	// magnitude it always equals Diag1Edge; both terms stay in the
	// matcher's edge sum so the 4.0 edge weight keeps the tuning it was
	// calibrated with.
	sig.Diag2Edge = math.Abs((tr + bl) - (tl + br))

	if total == 0 {
		sig.CenterX = 0.5
		sig.CenterY = 0.5
		return sig
	}

	var sumX, sumY float64
	for y := 0; y < h; y++ {
		row := gray.Pix[base+y*gray.Stride:]
		for x := 0; x < w; x++ {
			v := float64(row[x]) / 255.0
			sumX += v * float64(x)
			sumY += v * float64(y)
		}
	}
	sig.CenterX = sumX / total / float64(w)
	sig.CenterY = sumY / total / float64(h)

	return sig
}
