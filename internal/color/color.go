// Package color provides the channel weightings used to collapse an RGB
// pixel into a single intensity value.
package color

import (
	"errors"
	"math"
)

// ErrInvalidWeights is returned for weightings with a NaN or infinite
// coefficient.
var ErrInvalidWeights = errors.New("color: invalid luma weights")

// LumaWeights holds the per-channel coefficients of a grayscale conversion.
// Intensity is computed as R*w.R + G*w.G + B*w.B on raw 8-bit channel values,
// so the result lives in [0, 255*Sum()].
type LumaWeights struct {
	R, G, B float64
}

var (
	// LegacyWeights is the default weighting. Its green coefficient (0.7512)
	// differs from Rec. 709 and the weights sum to 1.036, so intensities can
	// exceed 255. It is kept as the default so edge maps match earlier output.
	LegacyWeights = LumaWeights{R: 0.2126, G: 0.7512, B: 0.0722}

	// Rec709Weights is the ITU-R BT.709 luma weighting (sums to 1.0).
	Rec709Weights = LumaWeights{R: 0.2126, G: 0.7152, B: 0.0722}
)

// Sum returns the sum of the three coefficients.
func (w LumaWeights) Sum() float64 {
	return w.R + w.G + w.B
}

// Apply returns the weighted intensity of a single pixel.
func (w LumaWeights) Apply(r, g, b uint8) float64 {
	return w.R*float64(r) + w.G*float64(g) + w.B*float64(b)
}

// IsZero reports whether all coefficients are zero (an unset weighting).
func (w LumaWeights) IsZero() bool {
	return w.R == 0 && w.G == 0 && w.B == 0
}

// IsFinite reports whether every coefficient is a finite number.
func (w LumaWeights) IsFinite() bool {
	for _, v := range [3]float64{w.R, w.G, w.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
