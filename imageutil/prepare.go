package imageutil

// PrepareForAnalysis prepares a source image for cell analysis:
//
//  1. Resizes to exactly pixelWidth x pixelHeight (the analysis cell
//     grid) using area interpolation.
//  2. Optionally applies mild sharpening, which firms up the strokes
//     the shape features are extracted from.
//
// Callers choose pixel dimensions as gridWidth*cellWidth x
// gridHeight*cellHeight so the grid covers the image with no partial
// trailing cells. Analysis of an unprepared image is also valid; the
// engine clips partial cells.
func PrepareForAnalysis(img *RGBAImage, pixelWidth, pixelHeight int, sharpen bool) *RGBAImage {
	resized := Resize(img, pixelWidth, pixelHeight, InterpolationArea)
	if sharpen {
		resized = Sharpen(resized)
	}
	return resized
}
