package glyphmatch

import (
	"math"
	"strings"
)

// Grid is the per-cell analysis result: one glyph index and one density
// byte per image cell. The density channel lets luminance-only consumers
// (the shape-matching-disabled fallback path) pick an index without
// re-deriving brightness from the source image.
//
// Grid dimensions are ceil(imageWidth/cellWidth) x
// ceil(imageHeight/cellHeight); the final row and column may have been
// computed from clipped partial cells. A Grid is produced fresh per
// analysis and owned by the caller.
type Grid struct {
	Width   int // cells per row
	Height  int // rows
	Indices []int
	Density []uint8
}

// NewGrid allocates a zeroed grid of the given cell dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:   width,
		Height:  height,
		Indices: make([]int, width*height),
		Density: make([]uint8, width*height),
	}
}

// GridSize returns the cell-grid dimensions for an image of the given
// pixel size analyzed at the given cell size: ceil(imageW/cellW) x
// ceil(imageH/cellH).
func GridSize(imageWidth, imageHeight, cellWidth, cellHeight int) (int, int) {
	return (imageWidth + cellWidth - 1) / cellWidth,
		(imageHeight + cellHeight - 1) / cellHeight
}

// IndexAt returns the glyph index of the cell at (x, y).
func (g *Grid) IndexAt(x, y int) int {
	return g.Indices[y*g.Width+x]
}

// DensityAt returns the density byte of the cell at (x, y).
func (g *Grid) DensityAt(x, y int) uint8 {
	return g.Density[y*g.Width+x]
}

func (g *Grid) set(x, y, index int, density uint8) {
	g.Indices[y*g.Width+x] = index
	g.Density[y*g.Width+x] = density
}

// Text renders the grid as newline-separated rows of glyphs from cs.
// Indices outside the set render as spaces. Intended for terminal
// previews and tests; GPU consumers sample the index grid directly.
func (g *Grid) Text(cs *CharacterSet) string {
	var sb strings.Builder
	sb.Grow(g.Width*g.Height + g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := g.IndexAt(x, y)
			if idx < 0 || idx >= cs.Len() {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(cs.Rune(idx))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// luminanceIndex maps a density in [0,1] linearly onto the index range
// of a character set with count glyphs. Used by the shape-matching
// fallback path; assumes the set is ordered dark-to-light (or the
// reverse) by convention.
func luminanceIndex(density float64, count int) int {
	idx := int(math.Round(density * float64(count-1)))
	if idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// densityByte quantizes a density in [0,1] to the grid's 0-255 channel.
func densityByte(density float64) uint8 {
	v := math.Round(density * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
