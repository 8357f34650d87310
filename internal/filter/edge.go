package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// EdgeMap computes the gradient magnitude of src with a sequential
// Convolver. useConvolution selects DirectConvolution over FiniteDifference.
func EdgeMap(src *mat.Dense, useConvolution bool) (*mat.Dense, error) {
	var c *Convolver
	return c.EdgeMap(src, ModeFor(useConvolution))
}

// EdgeMap convolves src with SobelX and SobelY and returns
// sqrt(Gx² + Gy²) per cell. The result has the same shape as src.
func (c *Convolver) EdgeMap(src *mat.Dense, mode Mode) (*mat.Dense, error) {
	gx, err := c.Convolve(src, SobelX, mode)
	if err != nil {
		return nil, fmt.Errorf("filter: horizontal gradient: %w", err)
	}
	gy, err := c.Convolve(src, SobelY, mode)
	if err != nil {
		return nil, fmt.Errorf("filter: vertical gradient: %w", err)
	}

	gx.MulElem(gx, gx)
	gy.MulElem(gy, gy)
	gx.Add(gx, gy)
	gx.Apply(func(_, _ int, v float64) float64 {
		return math.Sqrt(v)
	}, gx)

	return gx, nil
}
