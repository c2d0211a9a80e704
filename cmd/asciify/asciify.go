package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/asciideck/glyphmatch"
	"github.com/asciideck/glyphmatch/imageutil"
)

// defaultCharset mixes a brightness ramp with line and block drawing
// characters so the shape matcher has distinct stroke shapes to pick
// from.
const defaultCharset = " .:-=+*#%@|/\\_()[]<>^vo0█▀▄▌▐░▒▓│─┌┐└┘"

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output (if not specified, prints to stdout)")
	fontPath := flag.String("font", "",
		"Path to a TTF font file (required unless -luminance is set)")
	charset := flag.String("charset", defaultCharset,
		"Characters to match against, in index order")
	targetWidth := flag.Int("width", 80,
		"Target width of the output in cells")
	cellWidth := flag.Int("cellwidth", glyphmatch.DefaultCellWidth,
		"Glyph cell width in pixels")
	cellHeight := flag.Int("cellheight", glyphmatch.DefaultCellHeight,
		"Glyph cell height in pixels")
	seed := flag.Int64("seed", 0,
		"Random seed for glyph selection (0 = time-seeded)")
	luminance := flag.Bool("luminance", false,
		"Disable shape matching and select glyphs by brightness only")
	noSharpen := flag.Bool("nosharpen", false,
		"Skip the sharpening pass before analysis")
	atlasFile := flag.String("atlas", "",
		"Optional path to dump the rasterized glyph atlas as PNG")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cs, err := glyphmatch.NewCharacterSet(*charset)
	if err != nil {
		fmt.Printf("Error building character set: %v\n", err)
		os.Exit(1)
	}

	opts := []glyphmatch.EngineOption{
		glyphmatch.WithCellSize(*cellWidth, *cellHeight),
		glyphmatch.WithShapeMatching(!*luminance),
		glyphmatch.WithSharpen(!*noSharpen),
	}
	if *seed != 0 {
		opts = append(opts, glyphmatch.WithRandSource(rand.NewSource(*seed)))
	}

	engine, err := buildEngine(cs, *fontPath, *luminance, opts)
	if err != nil {
		fmt.Printf("Error configuring engine: %v\n", err)
		os.Exit(1)
	}

	if *atlasFile != "" {
		atlas, err := engine.Atlas()
		if err != nil {
			fmt.Printf("Error rasterizing atlas: %v\n", err)
			os.Exit(1)
		}
		if err := imageutil.SavePNG(atlas.Image, *atlasFile); err != nil {
			fmt.Printf("Error writing atlas: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Atlas written to %s (%d glyphs at %dx%d)\n",
			*atlasFile, atlas.Count, atlas.CellWidth, atlas.CellHeight)
	}

	grid, err := engine.AnalyzeFile(*inputFile, *targetWidth)
	if err != nil {
		fmt.Printf("Error processing image: %v\n", err)
		os.Exit(1)
	}

	text := grid.Text(cs)
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(text), 0644); err != nil {
			fmt.Printf("Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Output written to %s (%dx%d cells)\n",
			*outputFile, grid.Width, grid.Height)
	} else {
		fmt.Print(text)
	}
}

func buildEngine(cs *glyphmatch.CharacterSet, fontPath string, luminance bool,
	opts []glyphmatch.EngineOption) (*glyphmatch.Engine, error) {
	if fontPath == "" {
		if !luminance {
			return nil, fmt.Errorf("shape matching requires -font; " +
				"use -luminance for brightness-only output")
		}
		return glyphmatch.NewEngine(cs, nil, opts...)
	}
	ttf, err := glyphmatch.LoadFont(fontPath)
	if err != nil {
		return nil, err
	}
	return glyphmatch.NewEngine(cs, ttf, opts...)
}
