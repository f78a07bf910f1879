package hybrid

import "math"

// MaxImageWidth is the widest a page image is ever placed, in output units
const MaxImageWidth = 600

// maxPlacedSize caps a placed dimension so it always fits an int
const maxPlacedSize = math.MaxInt32

// PlaceImage computes the placed size of a page image of the given natural size.
// Images wider than MaxImageWidth are scaled down keeping their aspect ratio;
// narrower ones keep their size. A missing width or height is taken as
// MaxImageWidth, and both output dimensions stay within [1, math.MaxInt32].
func PlaceImage(width, height float64) (w, h int) {
	width = dimension(width)
	height = dimension(height)

	factor := 1.0
	if width > MaxImageWidth {
		factor = MaxImageWidth / width
	}
	return units(width * factor), units(height * factor)
}

// units rounds a scaled dimension into [1, maxPlacedSize]
func units(v float64) int {
	v = math.Round(v)
	switch {
	case v < 1:
		return 1
	case v > maxPlacedSize:
		return maxPlacedSize
	default:
		return int(v)
	}
}

// dimension substitutes MaxImageWidth for unusable sizes (zero, negative, NaN, Inf)
func dimension(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return MaxImageWidth
	}
	return v
}
