package imageutil

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// gradientImage builds a horizontal black-to-white gradient for resize
// and sharpening tests.
func gradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestResizeDimensions(t *testing.T) {
	t.Parallel()

	img := gradientImage(100, 100)

	for _, interp := range []Interpolation{
		InterpolationArea, InterpolationLinear, InterpolationNearest,
	} {
		resized := Resize(img, 50, 25, interp)
		if resized.Width() != 50 || resized.Height() != 25 {
			t.Errorf("Interp %d: resized to %dx%d, want 50x25",
				interp, resized.Width(), resized.Height())
		}
	}
}

func TestResizePreservesGradientDirection(t *testing.T) {
	t.Parallel()

	img := gradientImage(100, 20)
	resized := Resize(img, 50, 10, InterpolationArea)

	left := resized.RGBAAt(2, 5).R
	right := resized.RGBAAt(47, 5).R
	if left >= right {
		t.Errorf("Gradient direction lost: left %d >= right %d", left, right)
	}
}

func TestSharpenUniformImageUnchanged(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		}
	}

	sharpened := Sharpen(img)
	// Kernel weights sum to 1, so a flat region stays flat.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := sharpened.RGBAAt(x, y); c.R != 100 || c.G != 100 || c.B != 100 {
				t.Fatalf("Pixel (%d, %d) = %v, want uniform 100", x, y, c)
			}
		}
	}
}

func TestPrepareForAnalysisDimensions(t *testing.T) {
	t.Parallel()

	img := gradientImage(333, 217)
	prepared := PrepareForAnalysis(img, 160, 96, true)
	if prepared.Width() != 160 || prepared.Height() != 96 {
		t.Errorf("Prepared size = %dx%d, want 160x96",
			prepared.Width(), prepared.Height())
	}

	unsharpened := PrepareForAnalysis(img, 160, 96, false)
	if unsharpened.Width() != 160 || unsharpened.Height() != 96 {
		t.Errorf("Prepared size = %dx%d, want 160x96",
			unsharpened.Width(), unsharpened.Height())
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error when loading non-existent image")
	}
}

func TestSaveAndLoadPNGRoundTrip(t *testing.T) {
	t.Parallel()

	img := gradientImage(16, 8)
	path := filepath.Join(t.TempDir(), "gradient.png")

	if err := SavePNG(img.RGBA, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Output file not created: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if loaded.Width() != 16 || loaded.Height() != 8 {
		t.Errorf("Loaded size = %dx%d, want 16x8", loaded.Width(), loaded.Height())
	}
	if loaded.RGBAAt(0, 0) != img.RGBAAt(0, 0) {
		t.Errorf("Pixel (0,0) = %v, want %v", loaded.RGBAAt(0, 0), img.RGBAAt(0, 0))
	}
}
