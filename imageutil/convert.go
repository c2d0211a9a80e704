package imageutil

import (
	"image"
	"image/color"
)

// ToGrayscale converts an RGBA image to grayscale using the standard
// BT.601 luminance formula: Y = 0.299*R + 0.587*G + 0.114*B.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			// Integer math for speed, scaled by 1000
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// GrayFromImage converts any image.Image to a GrayImage. An input that
// is already *image.Gray shares the source pixel buffer instead of
// copying, so treat the result as read-only in that case.
func GrayFromImage(img image.Image) *GrayImage {
	if g, ok := img.(*image.Gray); ok {
		if g.Rect.Min == (image.Point{}) {
			return &GrayImage{Gray: g}
		}
		// A sub-image keeps the parent's Rect offset, but its Pix slice
		// already starts at the sub-image's first pixel. Re-anchoring
		// the Rect at the origin makes zero-based pixel access land on
		// the sub-image's own pixels, still without copying.
		return &GrayImage{Gray: &image.Gray{
			Pix:    g.Pix,
			Stride: g.Stride,
			Rect:   image.Rect(0, 0, g.Rect.Dx(), g.Rect.Dy()),
		}}
	}
	if rgba, ok := img.(*RGBAImage); ok {
		return ToGrayscale(rgba)
	}
	// ToGrayscale reads pixels zero-based, so the direct path only
	// holds for origin-anchored images; sub-images take the generic
	// copy below.
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return ToGrayscale(&RGBAImage{RGBA: rgba})
	}
	return ToGrayscale(RGBAImageFromImage(img))
}
