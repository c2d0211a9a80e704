package glyphmatch

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// DefaultCellWidth and DefaultCellHeight define the standard glyph
	// cell size used when no explicit size is configured.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	// cellMargin leaves a little breathing room inside each glyph cell
	// so ascenders and descenders do not touch the cell border.
	cellMargin = 2
)

// Atlas is the rasterized glyph strip for one character-set
// configuration: every glyph drawn light-on-dark at a fixed cell size,
// laid out left-to-right in character-set order. Rendering layers sample
// glyphs from it by index; the signature cache derives glyph signatures
// from it.
type Atlas struct {
	Image      *image.Gray
	CellWidth  int
	CellHeight int
	Count      int
}

// CellRect returns the pixel rectangle of glyph i within the atlas.
func (a *Atlas) CellRect(i int) image.Rectangle {
	return image.Rect(i*a.CellWidth, 0, (i+1)*a.CellWidth, a.CellHeight)
}

// LoadFont parses a TrueType font from the given path.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return ttf, nil
}

// RasterizeAtlas renders every glyph of cs at a fixed cellWidth x
// cellHeight into a single grayscale strip.
//
// Implementation choices:
//
//  1. Grayscale destination: anti-aliased coverage is kept as-is rather
//     than thresholded to a bitmap, so the signature extractor sees the
//     same fractional brightness a display would.
//
//  2. Font size of cellHeight minus a small margin: glyphs fill most of
//     the cell without ascenders or descenders clipping at the border.
//
//  3. Dynamic baseline from font metrics (ascent/descent) rather than a
//     hardcoded offset, so fonts with different proportions center
//     correctly and descenders (g, j, p, q, y) survive.
//
//  4. Glyphs the font has no outline for are skipped entirely and come
//     out blank. A blank cell produces a valid zero-density signature
//     that matches blank image regions, so this is not an error.
func RasterizeAtlas(cs *CharacterSet, ttf *truetype.Font, cellWidth, cellHeight int) (*Atlas, error) {
	if cs == nil || cs.Len() == 0 {
		return nil, fmt.Errorf("character set is empty")
	}
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("invalid glyph cell size %dx%d", cellWidth, cellHeight)
	}
	if ttf == nil {
		return nil, fmt.Errorf("no font configured")
	}

	count := cs.Len()
	strip := image.NewGray(image.Rect(0, 0, cellWidth*count, cellHeight))

	fontSize := float64(cellHeight - cellMargin)
	if fontSize < 1 {
		fontSize = float64(cellHeight)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(fontSize)
	ctx.SetDst(strip)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	// Baseline so that ascent and descent are balanced within the cell.
	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (cellHeight + ascent - descent) / 2

	for i := 0; i < count; i++ {
		r := cs.Rune(i)
		if ttf.Index(r) == 0 {
			// Unsupported glyph: leave the cell blank rather than
			// drawing the font's .notdef box.
			continue
		}
		// Clip to the glyph's own cell so wide glyphs cannot bleed
		// into their neighbors.
		ctx.SetClip(image.Rect(i*cellWidth, 0, (i+1)*cellWidth, cellHeight))
		pt := freetype.Pt(i*cellWidth+cellMargin/2, baselineY)
		if _, err := ctx.DrawString(string(r), pt); err != nil {
			return nil, fmt.Errorf("failed to rasterize glyph %q: %w", r, err)
		}
	}

	return &Atlas{
		Image:      strip,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Count:      count,
	}, nil
}
