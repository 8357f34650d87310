package image

import (
	"fmt"
	"math"

	"github.com/gogpu/edgeview/internal/color"
	"gonum.org/v1/gonum/mat"
)

// ToIntensityGrid converts an interleaved RGB buffer into a single-channel
// grid of shape (height, width). Element (row, col) holds the weighted
// intensity of pixel (x=col, y=row).
//
// Returns ErrInvalidBufferSize when len(pix) != width*height*3 or either
// dimension is non-positive, and color.ErrInvalidWeights when a weight is
// NaN or infinite.
func ToIntensityGrid(pix []byte, width, height int, w color.LumaWeights) (*mat.Dense, error) {
	if err := ValidateSize(len(pix), width, height); err != nil {
		return nil, err
	}
	if !w.IsFinite() {
		return nil, fmt.Errorf("%w: %+v", color.ErrInvalidWeights, w)
	}

	lut := color.LUTFor(w)
	grid := mat.NewDense(height, width, nil)

	for y := 0; y < height; y++ {
		row := grid.RawRowView(y)
		src := pix[y*width*BytesPerPixel : (y+1)*width*BytesPerPixel]
		for x := range row {
			i := x * BytesPerPixel
			row[x] = lut.Intensity(src[i], src[i+1], src[i+2])
		}
	}

	return grid, nil
}

// ToPixelBuffer linearly rescales grid into [0, 255] and replicates each
// value into the three channels of a new RGB buffer.
//
// The minimum grid value maps to 0 and the maximum to 255. A flat grid
// (max == min) has no range to stretch: every output byte is 0.
// NaN and infinite elements are excluded from the range and written as 0.
//
// Returns ErrEmptyGrid when grid is nil or has no elements.
func ToPixelBuffer(grid *mat.Dense) (*RawBuffer, error) {
	if grid == nil || grid.IsEmpty() {
		return nil, ErrEmptyGrid
	}

	rows, cols := grid.Dims()
	out, err := NewRawBuffer(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("image: allocate output: %w", err)
	}

	oldMin, oldMax, ok := finiteRange(grid)
	scale := 0.0
	if ok && oldMax > oldMin {
		scale = 255.0 / (oldMax - oldMin)
	}

	for y := 0; y < rows; y++ {
		row := grid.RawRowView(y)
		dst := out.RowBytes(y)
		for x, v := range row {
			var px uint8
			if scale != 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
				px = roundToByte((v - oldMin) * scale)
			}
			i := x * BytesPerPixel
			dst[i] = px
			dst[i+1] = px
			dst[i+2] = px
		}
	}

	return out, nil
}

// IntensityRange returns the minimum and maximum finite values of grid.
// ok is false when the grid is empty or holds no finite values.
func IntensityRange(grid *mat.Dense) (lo, hi float64, ok bool) {
	if grid == nil || grid.IsEmpty() {
		return 0, 0, false
	}
	return finiteRange(grid)
}

func finiteRange(grid *mat.Dense) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	rows, _ := grid.Dims()
	for y := 0; y < rows; y++ {
		for _, v := range grid.RawRowView(y) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// roundToByte rounds v to the nearest integer and clamps it to [0, 255].
func roundToByte(v float64) uint8 {
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
