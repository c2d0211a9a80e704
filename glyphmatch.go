// Package glyphmatch converts raster images into grids of character
// indices by matching the measured shape of each image cell (density,
// quadrant densities, edge imbalance, centroid) against precomputed
// signatures of a configurable character set, rather than by brightness
// alone. The resulting index grid, together with the rasterized glyph
// atlas, is consumed by an external rendering layer.
package glyphmatch

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/golang/freetype/truetype"

	"github.com/asciideck/glyphmatch/imageutil"
)

// Engine encapsulates one character-set configuration and all state
// derived from it: the rasterized atlas, the glyph signature cache, and
// the matcher. This allows multiple independent engines with different
// configurations and makes the cache lifecycle explicit, with no shared
// module-level state.
//
// Glyph signatures are read-only once computed; any number of analyses
// may reuse them. Configuration setters invalidate the cache by
// replacing it, never by mutating signatures an in-flight analysis may
// still hold. The Engine itself is not safe for concurrent use because
// the matcher carries per-engine random state.
type Engine struct {
	// Configuration
	charset        *CharacterSet
	font           *truetype.Font
	cellWidth      int // glyph cell size used for atlas rasterization
	cellHeight     int
	analysisWidth  int // image cell size used for analysis
	analysisHeight int
	shapeMatching  bool
	sharpen        bool
	randSrc        rand.Source

	// Derived state
	atlas   *Atlas
	cache   *SignatureCache
	matcher *Matcher
}

// EngineOption is a functional option for configuring an Engine.
type EngineOption func(*Engine)

// NewEngine creates an Engine for the given character set and font.
// Defaults: 8x16 glyph cells, analysis cells at twice the glyph cell
// size (trades grid resolution for match stability), shape matching
// enabled, sharpening enabled, time-seeded random selection.
//
// The font may be nil only when shape matching is disabled, since the
// luminance fallback path never rasterizes an atlas.
func NewEngine(cs *CharacterSet, ttf *truetype.Font, opts ...EngineOption) (*Engine, error) {
	if cs == nil || cs.Len() == 0 {
		return nil, fmt.Errorf("character set is empty")
	}

	e := &Engine{
		charset:       cs,
		font:          ttf,
		cellWidth:     DefaultCellWidth,
		cellHeight:    DefaultCellHeight,
		shapeMatching: true,
		sharpen:       true,
		cache:         NewSignatureCache(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.cellWidth <= 0 || e.cellHeight <= 0 {
		return nil, fmt.Errorf("invalid glyph cell size %dx%d", e.cellWidth, e.cellHeight)
	}
	if e.analysisWidth == 0 && e.analysisHeight == 0 {
		e.analysisWidth = e.cellWidth * 2
		e.analysisHeight = e.cellHeight * 2
	}
	if e.analysisWidth <= 0 || e.analysisHeight <= 0 {
		return nil, fmt.Errorf("invalid analysis cell size %dx%d",
			e.analysisWidth, e.analysisHeight)
	}

	e.matcher = NewMatcher(e.randSrc)
	return e, nil
}

// WithCellSize sets the glyph cell size used for atlas rasterization.
func WithCellSize(width, height int) EngineOption {
	return func(e *Engine) {
		e.cellWidth = width
		e.cellHeight = height
	}
}

// WithAnalysisCellSize sets the image cell size used for analysis. It
// need not equal the glyph cell size; the default is twice the glyph
// cell size.
func WithAnalysisCellSize(width, height int) EngineOption {
	return func(e *Engine) {
		e.analysisWidth = width
		e.analysisHeight = height
	}
}

// WithRandSource sets the random source used for candidate-pool
// selection. Fix the seed to make analysis reproducible in tests.
func WithRandSource(src rand.Source) EngineOption {
	return func(e *Engine) {
		e.randSrc = src
	}
}

// WithShapeMatching enables or disables shape matching. When disabled,
// Analyze maps each cell's mean luminance linearly onto the
// character-set index range instead.
func WithShapeMatching(enabled bool) EngineOption {
	return func(e *Engine) {
		e.shapeMatching = enabled
	}
}

// WithSharpen enables or disables the mild sharpening pass applied by
// AnalyzeFile before analysis.
func WithSharpen(enabled bool) EngineOption {
	return func(e *Engine) {
		e.sharpen = enabled
	}
}

// Charset returns the active character set.
func (e *Engine) Charset() *CharacterSet {
	return e.charset
}

// SetCharset replaces the character set and invalidates the atlas and
// all cached glyph signatures.
func (e *Engine) SetCharset(cs *CharacterSet) error {
	if cs == nil || cs.Len() == 0 {
		return fmt.Errorf("character set is empty")
	}
	e.charset = cs
	e.invalidate()
	return nil
}

// SetFont replaces the font and invalidates the atlas and all cached
// glyph signatures.
func (e *Engine) SetFont(ttf *truetype.Font) error {
	if ttf == nil {
		return fmt.Errorf("no font configured")
	}
	e.font = ttf
	e.invalidate()
	return nil
}

// SetCellSize replaces the glyph cell size and invalidates the atlas
// and all cached glyph signatures.
func (e *Engine) SetCellSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid glyph cell size %dx%d", width, height)
	}
	e.cellWidth = width
	e.cellHeight = height
	e.invalidate()
	return nil
}

func (e *Engine) invalidate() {
	e.atlas = nil
	e.cache.Invalidate()
}

// Atlas returns the glyph atlas for the active configuration,
// rasterizing it on first use.
func (e *Engine) Atlas() (*Atlas, error) {
	if e.atlas == nil {
		atlas, err := RasterizeAtlas(e.charset, e.font, e.cellWidth, e.cellHeight)
		if err != nil {
			return nil, err
		}
		e.atlas = atlas
		e.cache.Invalidate()
	}
	return e.atlas, nil
}

// GlyphSignatures returns the cached glyph signatures for the active
// configuration, computing them on first use. The returned slice is
// shared and read-only.
func (e *Engine) GlyphSignatures() ([]GlyphSignature, error) {
	atlas, err := e.Atlas()
	if err != nil {
		return nil, err
	}
	return e.cache.Signatures(e.charset, atlas), nil
}

// Analyze tiles img into analysis cells and selects one glyph index per
// cell, returning the resulting grid. The image is analyzed as-is; the
// final row and column are clipped when the image dimensions are not
// exact multiples of the analysis cell size. Use AnalyzeFile for the
// full load/resize/sharpen pipeline.
func (e *Engine) Analyze(img image.Image) (*Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("no image available")
	}
	bounds := img.Bounds()
	imgWidth, imgHeight := bounds.Dx(), bounds.Dy()
	if imgWidth == 0 || imgHeight == 0 {
		return nil, fmt.Errorf("no image available: empty bounds")
	}

	var glyphs []GlyphSignature
	if e.shapeMatching {
		var err error
		glyphs, err = e.GlyphSignatures()
		if err != nil {
			return nil, err
		}
	}

	gray := imageutil.GrayFromImage(img)
	gridWidth, gridHeight := GridSize(imgWidth, imgHeight, e.analysisWidth, e.analysisHeight)
	grid := NewGrid(gridWidth, gridHeight)
	count := e.charset.Len()

	for cy := 0; cy < gridHeight; cy++ {
		y0 := cy * e.analysisHeight
		cellH := e.analysisHeight
		if y0+cellH > imgHeight {
			cellH = imgHeight - y0
		}
		for cx := 0; cx < gridWidth; cx++ {
			x0 := cx * e.analysisWidth
			cellW := e.analysisWidth
			if x0+cellW > imgWidth {
				cellW = imgWidth - x0
			}

			sig := ExtractSignature(gray.Gray, x0, y0, cellW, cellH)

			var idx int
			if e.shapeMatching {
				idx = e.matcher.Select(sig, glyphs)
			} else {
				idx = luminanceIndex(sig.Density, count)
			}
			grid.set(cx, cy, idx, densityByte(sig.Density))
		}
	}

	return grid, nil
}

// AnalyzeFile loads an image from disk, resizes it to cover a grid
// targetWidth cells wide (preserving aspect ratio, compensating for the
// cell aspect), optionally sharpens it, and analyzes it.
func (e *Engine) AnalyzeFile(path string, targetWidth int) (*Grid, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("invalid target width %d", targetWidth)
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("no image available: %w", err)
	}

	aspect := float64(img.Height()) / float64(img.Width())
	cellAspect := float64(e.analysisWidth) / float64(e.analysisHeight)
	gridHeight := int(math.Round(float64(targetWidth) * aspect * cellAspect))
	if gridHeight < 1 {
		gridHeight = 1
	}

	prepared := imageutil.PrepareForAnalysis(img,
		targetWidth*e.analysisWidth, gridHeight*e.analysisHeight, e.sharpen)
	return e.Analyze(prepared.RGBA)
}
