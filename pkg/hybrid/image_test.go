package hybrid

import (
	"math"
	"testing"
)

func TestPlaceImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantW, wantH  int
	}{
		{"scaled down", 1200, 1600, 600, 800},
		{"exactly max", 600, 900, 600, 900},
		{"small kept", 300, 200, 300, 200},
		{"fractional rounded", 1000, 333, 600, 200},
		{"missing width", 0, 400, 600, 400},
		{"missing height", 1200, 0, 600, 300},
		{"both missing", 0, 0, 600, 600},
		{"negative width", -5, 10, 600, 10},
		{"floor at one", 60000, 10, 600, 1},
		{"nan width", math.NaN(), 100, 600, 100},
		{"huge height", 1200, 1e300, 600, math.MaxInt32},
		{"huge both", 1e300, 1e300, 600, 600},
		{"max float height", 10, math.MaxFloat64, 10, math.MaxInt32},
		{"tiny width", 1e-300, 50, 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PlaceImage(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PlaceImage(%v, %v) = %d x %d, want %d x %d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPlaceImageProperties(t *testing.T) {
	for width := 50.0; width <= 5000; width += 137 {
		for height := 50.0; height <= 5000; height += 211 {
			w, h := PlaceImage(width, height)
			if w > MaxImageWidth {
				t.Fatalf("PlaceImage(%v, %v): width %d exceeds %d", width, height, w, MaxImageWidth)
			}
			// Aspect ratio within one unit of rounding.
			if wantH := float64(w) * height / width; math.Abs(float64(h)-wantH) > 1 {
				t.Fatalf("PlaceImage(%v, %v) = %dx%d, height should be about %.2f", width, height, w, h, wantH)
			}
		}
	}
}

func TestPlaceImageExtremeBounds(t *testing.T) {
	extremes := []float64{-math.MaxFloat64, -1, 0, 1e-300, 0.4, 1, 599.5, 1e9, 1e18, 1e300, math.MaxFloat64, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, width := range extremes {
		for _, height := range extremes {
			w, h := PlaceImage(width, height)
			if w < 1 || w > MaxImageWidth {
				t.Errorf("PlaceImage(%v, %v): width %d outside [1, %d]", width, height, w, MaxImageWidth)
			}
			if h < 1 || h > math.MaxInt32 {
				t.Errorf("PlaceImage(%v, %v): height %d outside [1, %d]", width, height, h, math.MaxInt32)
			}
		}
	}
}
