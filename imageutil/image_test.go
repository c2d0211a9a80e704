package imageutil

import (
	"image"
	"image/color"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageClone(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(10, 10)
	img.SetRGBA(5, 5, color.RGBA{R: 255, A: 255})

	clone := img.Clone()
	if clone.RGBAAt(5, 5) != img.RGBAAt(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	clone.SetRGBA(5, 5, color.RGBA{G: 255, A: 255})
	if img.RGBAAt(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestGrayImageGetSet(t *testing.T) {
	t.Parallel()

	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 128)

	if got := img.GetGray(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
	if got := img.GetGray(0, 0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestToGrayscale(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(1, 1)

	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if v := ToGrayscale(img).GetGray(0, 0); v != 255 {
		t.Errorf("White pixel should convert to 255, got %d", v)
	}

	img.SetRGBA(0, 0, color.RGBA{A: 255})
	if v := ToGrayscale(img).GetGray(0, 0); v != 0 {
		t.Errorf("Black pixel should convert to 0, got %d", v)
	}

	// BT.601: 0.299 * 255 = 76.245
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	if v := ToGrayscale(img).GetGray(0, 0); v < 75 || v > 77 {
		t.Errorf("Red pixel should convert to ~76, got %d", v)
	}
}

func TestGrayFromImageWrapsGray(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.Pix[0] = 200

	wrapped := GrayFromImage(src)
	if &wrapped.Pix[0] != &src.Pix[0] {
		t.Error("GrayFromImage should wrap *image.Gray without copying")
	}
	if wrapped.GetGray(0, 0) != 200 {
		t.Errorf("Wrapped value = %d, want 200", wrapped.GetGray(0, 0))
	}
}

func TestGrayFromImageGraySubImage(t *testing.T) {
	t.Parallel()

	parent := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			parent.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	sub := parent.SubImage(image.Rect(4, 4, 12, 12)).(*image.Gray)

	gray := GrayFromImage(sub)
	if gray.Width() != 8 || gray.Height() != 8 {
		t.Fatalf("Size = %dx%d, want 8x8", gray.Width(), gray.Height())
	}
	if &gray.Pix[0] != &sub.Pix[0] {
		t.Error("Gray sub-image should share the source pixel buffer")
	}
	if got := gray.GetGray(0, 0); got != 255 {
		t.Errorf("Value at (0, 0) = %d, want 255 (sub-image top-left)", got)
	}
	if got := gray.GetGray(7, 7); got != 255 {
		t.Errorf("Value at (7, 7) = %d, want 255 (sub-image bottom-right)", got)
	}
}

func TestGrayFromImageRGBASubImage(t *testing.T) {
	t.Parallel()

	parent := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			parent.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	sub := parent.SubImage(image.Rect(4, 4, 12, 12)).(*image.RGBA)

	gray := GrayFromImage(sub)
	if gray.Width() != 8 || gray.Height() != 8 {
		t.Fatalf("Size = %dx%d, want 8x8", gray.Width(), gray.Height())
	}
	if got := gray.GetGray(0, 0); got != 255 {
		t.Errorf("Value at (0, 0) = %d, want 255 (sub-image top-left)", got)
	}
	if got := gray.GetGray(7, 7); got != 255 {
		t.Errorf("Value at (7, 7) = %d, want 255 (sub-image bottom-right)", got)
	}
}

func TestGrayFromImageConverts(t *testing.T) {
	t.Parallel()

	src := NewRGBAImage(2, 2)
	src.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	gray := GrayFromImage(src)
	if gray.GetGray(0, 0) != 255 {
		t.Errorf("Converted value = %d, want 255", gray.GetGray(0, 0))
	}
	if gray.GetGray(1, 1) != 0 {
		t.Errorf("Converted value = %d, want 0", gray.GetGray(1, 1))
	}
}
